package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// PassengerRepo provides CRUD operations for passengers. All writes
// run inside a caller-supplied transaction so the validation gate,
// the write and the post-commit email normalization share one atomic
// unit. Field-level invariants are enforced by the engine before any
// of these methods run.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo returns a new PassengerRepo bound to the given database.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

// DB exposes the underlying handle so the engine can begin
// transactions spanning multiple repositories.
func (r *PassengerRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new passenger within the scope of an existing
// transaction and populates the generated ID on the record. The
// caller must commit or roll back the transaction.
func (r *PassengerRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Passenger, now time.Time) error {
	var last, email interface{}
	if p.LastName != nil {
		last = *p.LastName
	}
	if p.Email != nil {
		email = *p.Email
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO passengers (first_name, last_name, date_of_birth, email, phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.FirstName, last, formatDate(p.DateOfBirth), email, p.Phone, formatTime(now),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.CreatedAt = now.UTC()
	return nil
}

// UpdateTx overwrites the mutable fields of a passenger within a
// transaction. It returns ErrPassengerNotFound when no row matches.
func (r *PassengerRepo) UpdateTx(ctx context.Context, tx *sql.Tx, p *model.Passenger) error {
	var last, email interface{}
	if p.LastName != nil {
		last = *p.LastName
	}
	if p.Email != nil {
		email = *p.Email
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE passengers SET first_name = ?, last_name = ?, date_of_birth = ?, email = ?, phone = ?
		 WHERE id = ?`,
		p.FirstName, last, formatDate(p.DateOfBirth), email, p.Phone, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPassengerNotFound
	}
	return nil
}

// NullifyEmailTx clears the email of a passenger. The engine calls
// this after a write when the stored address fails the minimal
// format check; malformed email is corrected, never rejected.
func (r *PassengerRepo) NullifyEmailTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE passengers SET email = NULL WHERE id = ?`, id)
	return err
}

// GetByID returns the passenger with the given ID, or ErrPassengerNotFound.
func (r *PassengerRepo) GetByID(ctx context.Context, id uint64) (*model.Passenger, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, date_of_birth, email, phone, created_at
		 FROM passengers WHERE id = ?`, id)
	return scanPassenger(row)
}

// GetByIDTx is GetByID within a transaction.
func (r *PassengerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Passenger, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, date_of_birth, email, phone, created_at
		 FROM passengers WHERE id = ?`, id)
	return scanPassenger(row)
}

// ExistsTx reports whether a passenger exists, within a transaction.
func (r *PassengerRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM passengers WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteCascadeTx removes a passenger and, first, every ticket they
// hold. Removing a passenger removes their reservations: the cascade
// is an explicit referential action, not a storage-engine feature.
// It returns the number of tickets removed alongside any error.
func (r *PassengerRepo) DeleteCascadeTx(ctx context.Context, tx *sql.Tx, id uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE passenger_id = ?`, id)
	if err != nil {
		return 0, err
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	res, err = tx.ExecContext(ctx, `DELETE FROM passengers WHERE id = ?`, id)
	if err != nil {
		return purged, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return purged, err
	}
	if n == 0 {
		return purged, ErrPassengerNotFound
	}
	return purged, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPassenger(row rowScanner) (*model.Passenger, error) {
	var p model.Passenger
	var last, email sql.NullString
	var dob, created string
	err := row.Scan(&p.ID, &p.FirstName, &last, &dob, &email, &p.Phone, &created)
	if err == sql.ErrNoRows {
		return nil, ErrPassengerNotFound
	}
	if err != nil {
		return nil, err
	}
	if last.Valid {
		ln := last.String
		p.LastName = &ln
	}
	if email.Valid {
		em := email.String
		p.Email = &em
	}
	if p.DateOfBirth, err = parseDate(dob); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &p, nil
}
