package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// ClerkRepo provides access to booking-clerk accounts used by the
// HTTP layer for authentication. Only the bcrypt hash of a password
// is ever stored.
type ClerkRepo struct {
	db *sql.DB
}

// NewClerkRepo returns a new ClerkRepo bound to the given database.
func NewClerkRepo(db *sql.DB) *ClerkRepo { return &ClerkRepo{db: db} }

// Create inserts a new clerk account and returns its generated ID.
func (r *ClerkRepo) Create(ctx context.Context, email, passwordHash string, now time.Time) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clerks (email, password_hash, is_active, created_at) VALUES (?, ?, 1, ?)`,
		email, passwordHash, formatTime(now),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail returns the clerk with the given email, or ErrClerkNotFound.
func (r *ClerkRepo) GetByEmail(ctx context.Context, email string) (*model.Clerk, error) {
	var c model.Clerk
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, is_active, created_at FROM clerks WHERE email = ?`,
		email,
	).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.IsActive, &created)
	if err == sql.ErrNoRows {
		return nil, ErrClerkNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &c, nil
}

// Count returns the number of clerk accounts. Registration is open
// only while the table is empty (bootstrap) unless performed by an
// authenticated clerk.
func (r *ClerkRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clerks`).Scan(&n)
	return n, err
}
