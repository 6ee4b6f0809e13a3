package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// TicketRepo provides CRUD operations for tickets. Every mutation
// runs inside a caller-supplied transaction: the engine performs the
// conflict scan, the write and the expiry sweep as one atomic unit.
// The repo carries the dialect so the conflict scan can lock the
// scanned rows where the engine supports it.
type TicketRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB, dialect database.Dialect) *TicketRepo {
	return &TicketRepo{db: db, dialect: dialect}
}

// DB exposes the underlying handle so the engine can begin
// transactions spanning multiple repositories.
func (r *TicketRepo) DB() *sql.DB { return r.db }

const ticketColumns = `id, train_id, passenger_id, from_station_id, to_station_id,
	departs_at, arrives_at, coach_id, seat_number, fare_cents, created_at`

// CreateTx inserts a new ticket within the scope of an existing
// transaction and populates the generated ID on the record.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket, now time.Time) error {
	var arrives interface{}
	if t.ArrivesAt != nil {
		arrives = formatTime(*t.ArrivesAt)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (train_id, passenger_id, from_station_id, to_station_id,
			departs_at, arrives_at, coach_id, seat_number, fare_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TrainID, t.PassengerID, t.FromStationID, t.ToStationID,
		formatTime(t.DepartsAt), arrives, t.CoachID, t.SeatNumber, t.FareCents, formatTime(now),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	t.CreatedAt = now.UTC()
	return nil
}

// UpdateTx overwrites the seat assignment and travel window of a
// ticket within a transaction. Only reschedule/seat-change requests
// mutate tickets; all invariants are re-checked by the engine before
// this runs.
func (r *TicketRepo) UpdateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	var arrives interface{}
	if t.ArrivesAt != nil {
		arrives = formatTime(*t.ArrivesAt)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE tickets SET departs_at = ?, arrives_at = ?, coach_id = ?, seat_number = ?
		 WHERE id = ?`,
		formatTime(t.DepartsAt), arrives, t.CoachID, t.SeatNumber, t.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// GetByID returns the ticket with the given ID, or ErrTicketNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	return scanTicket(row)
}

// GetByIDTx is GetByID within a transaction.
func (r *TicketRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Ticket, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	return scanTicket(row)
}

// ListForSeatTx returns every ticket occupying the given
// (train, coach, seat) triple, excluding excludeID (pass 0 to
// exclude nothing; a reschedule must not conflict with itself).
// On MySQL the scan takes row locks so a concurrent booker of the
// same triple serializes behind this transaction.
func (r *TicketRepo) ListForSeatTx(ctx context.Context, tx *sql.Tx, trainID, coachID uint64, seat uint32, excludeID uint64) ([]model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets
		WHERE train_id = ? AND coach_id = ? AND seat_number = ? AND id <> ?` + r.dialect.LockSuffix()
	rows, err := tx.QueryContext(ctx, q, trainID, coachID, seat, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// DeleteExpiredTx purges tickets whose travel window has fully
// elapsed: arrival known and both departure and arrival strictly
// before the offset-adjusted threshold. Open-ended tickets are never
// auto-purged. The ticket written by the enclosing mutation is
// excluded so a freshly inserted row always survives its own sweep.
// Returns the number of rows removed.
func (r *TicketRepo) DeleteExpiredTx(ctx context.Context, tx *sql.Tx, threshold time.Time, excludeID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM tickets WHERE id <> ? AND arrives_at IS NOT NULL AND departs_at < ? AND arrives_at < ?`,
		excludeID, formatTime(threshold), formatTime(threshold),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTx removes a single ticket (explicit cancellation).
func (r *TicketRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// Count returns the total number of tickets. Exposed for tests and
// operational checks.
func (r *TicketRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n)
	return n, err
}

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var t model.Ticket
	var departs, created string
	var arrives sql.NullString
	err := row.Scan(&t.ID, &t.TrainID, &t.PassengerID, &t.FromStationID, &t.ToStationID,
		&departs, &arrives, &t.CoachID, &t.SeatNumber, &t.FareCents, &created)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.DepartsAt, err = parseTime(departs); err != nil {
		return nil, err
	}
	if t.ArrivesAt, err = parseNullTime(arrives); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &t, nil
}
