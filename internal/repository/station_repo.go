package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// StationRepo provides access to the stations table. Stations are
// leaf reference data: created once by catalog administration and
// only ever read afterwards.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo returns a new StationRepo bound to the given database.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// Create inserts a new station and returns its generated ID.
func (r *StationRepo) Create(ctx context.Context, name string, now time.Time) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO stations (name, created_at) VALUES (?, ?)`,
		name, formatTime(now),
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

// GetByID returns the station with the given ID, or ErrStationNotFound.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
	var st model.Station
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM stations WHERE id = ?`, id,
	).Scan(&st.ID, &st.Name, &created)
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}
	if st.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &st, nil
}

// ExistsTx reports whether a station exists, within a transaction.
func (r *StationRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM stations WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all stations ordered by name.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM stations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Station, 0)
	for rows.Next() {
		var st model.Station
		var created string
		if err := rows.Scan(&st.ID, &st.Name, &created); err != nil {
			return nil, err
		}
		if st.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
