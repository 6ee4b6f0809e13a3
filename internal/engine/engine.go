package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
)

// DefaultLocalOffset is the reference deployment's local-time offset
// (IST) applied to the evaluation clock by the sweeper and the
// active-view filters.
const DefaultLocalOffset = 5*time.Hour + 30*time.Minute

// Engine wires the repositories into the integrity pipeline. Each
// mutation entry point begins a transaction, runs the validation gate
// and (for tickets) the conflict detector against the rows it is
// about to touch, writes, sweeps, and commits. If any step fails the
// transaction rolls back and no partial state is visible.
type Engine struct {
	db          *sql.DB
	stations    *repository.StationRepo
	coaches     *repository.CoachRepo
	trains      *repository.TrainRepo
	passengers  *repository.PassengerRepo
	tickets     *repository.TicketRepo
	clock       Clock
	localOffset time.Duration
}

// New constructs an Engine over the given database. A nil clock
// defaults to the system clock; a zero offset defaults to IST.
func New(db *sql.DB, dialect database.Dialect, clock Clock, localOffset time.Duration) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if localOffset == 0 {
		localOffset = DefaultLocalOffset
	}
	return &Engine{
		db:          db,
		stations:    repository.NewStationRepo(db),
		coaches:     repository.NewCoachRepo(db),
		trains:      repository.NewTrainRepo(db),
		passengers:  repository.NewPassengerRepo(db),
		tickets:     repository.NewTicketRepo(db, dialect),
		clock:       clock,
		localOffset: localOffset,
	}
}

// Stations exposes the station repository for catalog administration.
func (e *Engine) Stations() *repository.StationRepo { return e.stations }

// Coaches exposes the coach repository for catalog administration.
func (e *Engine) Coaches() *repository.CoachRepo { return e.coaches }

// Trains exposes the train repository for catalog administration.
func (e *Engine) Trains() *repository.TrainRepo { return e.trains }

// Passengers exposes the passenger repository for reads.
func (e *Engine) Passengers() *repository.PassengerRepo { return e.passengers }

// Tickets exposes the ticket repository for reads.
func (e *Engine) Tickets() *repository.TicketRepo { return e.tickets }

// PassengerFields carries the mutable fields of a passenger record
// for create and update requests.
type PassengerFields struct {
	FirstName   string
	LastName    *string
	DateOfBirth time.Time
	Email       *string
	Phone       string
}

// BookingRequest carries everything needed to book a seat.
type BookingRequest struct {
	TrainID       uint64
	PassengerID   uint64
	FromStationID uint64
	ToStationID   uint64
	DepartsAt     time.Time
	ArrivesAt     *time.Time
	CoachID       uint64
	SeatNumber    uint32
	FareCents     uint32
}

// ChangeRequest carries a reschedule/seat-change. Nil fields keep
// the ticket's current value; ClearArrival turns the ticket
// open-ended.
type ChangeRequest struct {
	NewCoachID    *uint64
	NewSeatNumber *uint32
	NewDepartsAt  *time.Time
	NewArrivesAt  *time.Time
	ClearArrival  bool
}

// begin starts a transaction with the committed-flag rollback guard.
// The returned func is safe to defer unconditionally.
func (e *Engine) begin(ctx context.Context) (*sql.Tx, *bool, func(), error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	committed := false
	cleanup := func() {
		if !committed {
			_ = tx.Rollback()
		}
	}
	return tx, &committed, cleanup, nil
}

// CreatePassenger validates the fields and inserts a new passenger.
// A malformed email is not an error: the row is written and the
// address nulled out within the same atomic unit.
func (e *Engine) CreatePassenger(ctx context.Context, fields PassengerFields) (uint64, error) {
	now := e.clock.Now().UTC()
	p := &model.Passenger{
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		DateOfBirth: fields.DateOfBirth,
		Email:       fields.Email,
		Phone:       fields.Phone,
	}
	if err := validatePassenger(p, now); err != nil {
		return 0, err
	}
	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := e.passengers.CreateTx(ctx, tx, p, now); err != nil {
		return 0, err
	}
	if p.Email != nil && !emailAcceptable(*p.Email) {
		if err := e.passengers.NullifyEmailTx(ctx, tx, p.ID); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	*committed = true
	return p.ID, nil
}

// UpdatePassenger re-runs the validation gate and overwrites the
// record. The email soft-fix applies on update exactly as on insert.
func (e *Engine) UpdatePassenger(ctx context.Context, id uint64, fields PassengerFields) error {
	now := e.clock.Now().UTC()
	p := &model.Passenger{
		ID:          id,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		DateOfBirth: fields.DateOfBirth,
		Email:       fields.Email,
		Phone:       fields.Phone,
	}
	if err := validatePassenger(p, now); err != nil {
		return err
	}
	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := e.passengers.UpdateTx(ctx, tx, p); err != nil {
		return err
	}
	if p.Email != nil && !emailAcceptable(*p.Email) {
		if err := e.passengers.NullifyEmailTx(ctx, tx, p.ID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*committed = true
	return nil
}

// DeletePassenger removes a passenger and cascades to every ticket
// they hold. The cascade is an explicit referential action run in
// the same transaction as the delete.
func (e *Engine) DeletePassenger(ctx context.Context, id uint64) error {
	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := e.passengers.DeleteCascadeTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*committed = true
	return nil
}

// BookTicket runs the full pipeline for a new reservation: interval
// shape, referential checks, seat conflict scan, write, sweep. On
// any failure the reservation count and all existing rows are left
// unchanged.
func (e *Engine) BookTicket(ctx context.Context, req BookingRequest) (uint64, error) {
	if err := validateInterval(req.DepartsAt, req.ArrivesAt, req.FareCents); err != nil {
		return 0, err
	}
	if req.FromStationID == req.ToStationID {
		return 0, ErrSameStations
	}
	t := &model.Ticket{
		TrainID:       req.TrainID,
		PassengerID:   req.PassengerID,
		FromStationID: req.FromStationID,
		ToStationID:   req.ToStationID,
		DepartsAt:     req.DepartsAt.UTC(),
		CoachID:       req.CoachID,
		SeatNumber:    req.SeatNumber,
		FareCents:     req.FareCents,
	}
	if req.ArrivesAt != nil {
		arr := req.ArrivesAt.UTC()
		t.ArrivesAt = &arr
	}

	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := e.checkTicketReferencesTx(ctx, tx, t); err != nil {
		return 0, err
	}
	existing, err := e.tickets.ListForSeatTx(ctx, tx, t.TrainID, t.CoachID, t.SeatNumber, 0)
	if err != nil {
		return 0, err
	}
	if err := checkConflict(t, existing); err != nil {
		return 0, err
	}
	if err := e.tickets.CreateTx(ctx, tx, t, e.clock.Now().UTC()); err != nil {
		return 0, err
	}
	if _, err := e.sweepExpiredTx(ctx, tx, t.ID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	*committed = true
	return t.ID, nil
}

// RescheduleTicket applies a seat change and/or a new travel window
// to an existing ticket, re-running every invariant. The ticket
// being moved is excluded from its own conflict scan.
func (e *Engine) RescheduleTicket(ctx context.Context, id uint64, change ChangeRequest) error {
	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := e.tickets.GetByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if change.NewCoachID != nil {
		t.CoachID = *change.NewCoachID
	}
	if change.NewSeatNumber != nil {
		t.SeatNumber = *change.NewSeatNumber
	}
	if change.NewDepartsAt != nil {
		t.DepartsAt = change.NewDepartsAt.UTC()
	}
	if change.ClearArrival {
		t.ArrivesAt = nil
	} else if change.NewArrivesAt != nil {
		arr := change.NewArrivesAt.UTC()
		t.ArrivesAt = &arr
	}
	if err := validateInterval(t.DepartsAt, t.ArrivesAt, t.FareCents); err != nil {
		return err
	}
	if change.NewCoachID != nil {
		ok, err := e.coaches.ExistsTx(ctx, tx, t.CoachID)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrCoachNotFound
		}
	}
	existing, err := e.tickets.ListForSeatTx(ctx, tx, t.TrainID, t.CoachID, t.SeatNumber, t.ID)
	if err != nil {
		return err
	}
	if err := checkConflict(t, existing); err != nil {
		return err
	}
	if err := e.tickets.UpdateTx(ctx, tx, t); err != nil {
		return err
	}
	if _, err := e.sweepExpiredTx(ctx, tx, t.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*committed = true
	return nil
}

// CancelTicket explicitly destroys a reservation.
func (e *Engine) CancelTicket(ctx context.Context, id uint64) error {
	tx, committed, cleanup, err := e.begin(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := e.tickets.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*committed = true
	return nil
}

// checkTicketReferencesTx verifies every weak reference a booking
// holds: the train, coach and passenger must exist, and both the
// boarding and destination stations must be declared stops of the
// train.
func (e *Engine) checkTicketReferencesTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	ok, err := e.trains.ExistsTx(ctx, tx, t.TrainID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrTrainNotFound
	}
	ok, err = e.coaches.ExistsTx(ctx, tx, t.CoachID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrCoachNotFound
	}
	ok, err = e.passengers.ExistsTx(ctx, tx, t.PassengerID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrPassengerNotFound
	}
	for _, station := range []uint64{t.FromStationID, t.ToStationID} {
		ok, err = e.trains.HasStopTx(ctx, tx, t.TrainID, station)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrNotAStop
		}
	}
	return nil
}
