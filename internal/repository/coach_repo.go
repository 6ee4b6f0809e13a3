package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// CoachRepo provides access to the coaches table.
type CoachRepo struct {
	db *sql.DB
}

// NewCoachRepo returns a new CoachRepo bound to the given database.
func NewCoachRepo(db *sql.DB) *CoachRepo { return &CoachRepo{db: db} }

// Create inserts a new coach and returns its generated ID.
func (r *CoachRepo) Create(ctx context.Context, code string, now time.Time) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO coaches (code, created_at) VALUES (?, ?)`,
		code, formatTime(now),
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

// GetByID returns the coach with the given ID, or ErrCoachNotFound.
func (r *CoachRepo) GetByID(ctx context.Context, id uint64) (*model.Coach, error) {
	var co model.Coach
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, created_at FROM coaches WHERE id = ?`, id,
	).Scan(&co.ID, &co.Code, &created)
	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, err
	}
	if co.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &co, nil
}

// ExistsTx reports whether a coach exists, within a transaction.
func (r *CoachRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM coaches WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all coaches ordered by code.
func (r *CoachRepo) List(ctx context.Context) ([]model.Coach, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, created_at FROM coaches ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Coach, 0)
	for rows.Next() {
		var co model.Coach
		var created string
		if err := rows.Scan(&co.ID, &co.Code, &created); err != nil {
			return nil, err
		}
		if co.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, co)
	}
	return out, rows.Err()
}
