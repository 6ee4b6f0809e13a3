package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// TrainRepo provides access to the trains and route_stops tables.
// A train owns an ordered set of route stops; a stop can be removed
// only while no ticket references its station on that train
// (restricted delete).
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo returns a new TrainRepo bound to the given database.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// Create inserts a new train between two terminal stations and
// returns its generated ID. Terminal distinctness is validated by
// the engine before this is called.
func (r *TrainRepo) Create(ctx context.Context, name string, station1, station2 uint64, now time.Time) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trains (name, station1_id, station2_id, created_at) VALUES (?, ?, ?, ?)`,
		name, station1, station2, formatTime(now),
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

// GetByID returns the train with the given ID, or ErrTrainNotFound.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*model.Train, error) {
	var tr model.Train
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, station1_id, station2_id, created_at FROM trains WHERE id = ?`, id,
	).Scan(&tr.ID, &tr.Name, &tr.Station1ID, &tr.Station2ID, &created)
	if err == sql.ErrNoRows {
		return nil, ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	if tr.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &tr, nil
}

// GetByName returns the train with the given name, or ErrTrainNotFound.
func (r *TrainRepo) GetByName(ctx context.Context, name string) (*model.Train, error) {
	var tr model.Train
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, station1_id, station2_id, created_at FROM trains WHERE name = ?`, name,
	).Scan(&tr.ID, &tr.Name, &tr.Station1ID, &tr.Station2ID, &created)
	if err == sql.ErrNoRows {
		return nil, ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	if tr.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &tr, nil
}

// ExistsTx reports whether a train exists, within a transaction.
func (r *TrainRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM trains WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddStop appends a route stop for a train at the given position.
// It returns ErrDuplicateStop when the train already stops at the
// station, since a train may pass each of its stations at most once.
func (r *TrainRepo) AddStop(ctx context.Context, trainID, stationID uint64, position uint32) (uint64, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM route_stops WHERE train_id = ? AND station_id = ?`,
		trainID, stationID,
	).Scan(&one)
	if err == nil {
		return 0, ErrDuplicateStop
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO route_stops (train_id, station_id, position) VALUES (?, ?, ?)`,
		trainID, stationID, position,
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

// ListStops returns the ordered route stops of a train.
func (r *TrainRepo) ListStops(ctx context.Context, trainID uint64) ([]model.RouteStop, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, train_id, station_id, position FROM route_stops WHERE train_id = ? ORDER BY position`,
		trainID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RouteStop, 0)
	for rows.Next() {
		var rs model.RouteStop
		if err := rows.Scan(&rs.ID, &rs.TrainID, &rs.StationID, &rs.Position); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// HasStopTx reports whether a train stops at a station, within a
// transaction. Booking validation uses this to confirm departure and
// arrival stations are declared stops.
func (r *TrainRepo) HasStopTx(ctx context.Context, tx *sql.Tx, trainID, stationID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM route_stops WHERE train_id = ? AND station_id = ?`,
		trainID, stationID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteStop removes a route stop. The delete is restricted: when
// any ticket on the train still boards at or travels to the stop's
// station, ErrStopInUse is returned and nothing changes.
func (r *TrainRepo) DeleteStop(ctx context.Context, stopID uint64) error {
	var trainID, stationID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT train_id, station_id FROM route_stops WHERE id = ?`, stopID,
	).Scan(&trainID, &stationID)
	if err == sql.ErrNoRows {
		return ErrNotAStop
	}
	if err != nil {
		return err
	}
	var inUse int
	err = r.db.QueryRowContext(ctx,
		`SELECT 1 FROM tickets WHERE train_id = ? AND (from_station_id = ? OR to_station_id = ?)`,
		trainID, stationID, stationID,
	).Scan(&inUse)
	if err == nil {
		return ErrStopInUse
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM route_stops WHERE id = ?`, stopID)
	return err
}
