package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
)

// testNow is the fixed evaluation clock for engine tests. The
// December 2024 travel windows used throughout are in its future;
// anything in 2023 is long elapsed.
var testNow = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	eng      *Engine
	train    uint64
	coach    uint64
	coachB   uint64
	stationA uint64
	stationB uint64
	stationC uint64
	holder   uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "railway.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.EnsureSchema(ctx, db, database.SQLite))

	eng := New(db, database.SQLite, ClockFunc(func() time.Time { return testNow }), DefaultLocalOffset)

	f := &fixture{eng: eng}
	f.stationA, err = eng.Stations().Create(ctx, "Howrah", testNow)
	require.NoError(t, err)
	f.stationB, err = eng.Stations().Create(ctx, "Nagpur", testNow)
	require.NoError(t, err)
	f.stationC, err = eng.Stations().Create(ctx, "Mumbai CST", testNow)
	require.NoError(t, err)
	f.coach, err = eng.Coaches().Create(ctx, "S1", testNow)
	require.NoError(t, err)
	f.coachB, err = eng.Coaches().Create(ctx, "A1", testNow)
	require.NoError(t, err)
	f.train, err = eng.Trains().Create(ctx, "Duronto Express", f.stationA, f.stationC, testNow)
	require.NoError(t, err)
	for i, station := range []uint64{f.stationA, f.stationB, f.stationC} {
		_, err = eng.Trains().AddStop(ctx, f.train, station, uint32(i+1))
		require.NoError(t, err)
	}
	f.holder = f.createPassenger(t, "Asha", "9876543210")
	return f
}

func (f *fixture) createPassenger(t *testing.T, first, phone string) uint64 {
	t.Helper()
	id, err := f.eng.CreatePassenger(context.Background(), PassengerFields{
		FirstName:   first,
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Phone:       phone,
	})
	require.NoError(t, err)
	return id
}

// booking builds a valid closed-window request on the fixture's train.
func (f *fixture) booking(seat uint32, dep time.Time, arr *time.Time) BookingRequest {
	return BookingRequest{
		TrainID:       f.train,
		PassengerID:   f.holder,
		FromStationID: f.stationA,
		ToStationID:   f.stationC,
		DepartsAt:     dep,
		ArrivesAt:     arr,
		CoachID:       f.coach,
		SeatNumber:    seat,
		FareCents:     125_000,
	}
}

func TestBookTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := f.eng.Tickets().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.train, got.TrainID)
	assert.Equal(t, f.holder, got.PassengerID)
	assert.Equal(t, f.stationA, got.FromStationID)
	assert.Equal(t, f.stationC, got.ToStationID)
	assert.Equal(t, uint32(41), got.SeatNumber)
	assert.Equal(t, uint32(125_000), got.FareCents)
	assert.True(t, got.DepartsAt.Equal(at(18, 1, 45)))
	require.NotNil(t, got.ArrivesAt)
	assert.True(t, got.ArrivesAt.Equal(at(18, 23, 0)))
}

func TestBookTicketRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	_, err = f.eng.BookTicket(ctx, f.booking(41, at(18, 17, 35), atp(18, 23, 0)))
	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, uint32(41), conflict.SeatNumber)

	// The failed booking must leave the store untouched.
	n, err := f.eng.Tickets().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBookTicketAllowsBackToBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	// Overnight continuation on the same seat starting at the exact
	// hand-off instant.
	_, err = f.eng.BookTicket(ctx, f.booking(41, at(18, 23, 0), atp(19, 5, 0)))
	require.NoError(t, err)

	n, err := f.eng.Tickets().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestBookTicketOtherSeatUnaffected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	_, err = f.eng.BookTicket(ctx, f.booking(42, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	// Same seat number in a different coach is a different seat.
	req := f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.CoachID = f.coachB
	_, err = f.eng.BookTicket(ctx, req)
	require.NoError(t, err)
}

func TestBookTicketReferenceChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.TrainID = 999
	_, err := f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, repository.ErrTrainNotFound)

	req = f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.CoachID = 999
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, repository.ErrCoachNotFound)

	req = f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.PassengerID = 999
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, repository.ErrPassengerNotFound)

	// A station the train never passes is not a valid boarding point.
	orphan, err := f.eng.Stations().Create(ctx, "Chennai Central", testNow)
	require.NoError(t, err)
	req = f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.FromStationID = orphan
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, repository.ErrNotAStop)

	req = f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.ToStationID = req.FromStationID
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, ErrSameStations)

	req = f.booking(41, at(18, 1, 45), atp(18, 23, 0))
	req.FareCents = 0
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, ErrFareNotPositive)

	req = f.booking(41, at(18, 23, 0), atp(18, 1, 45))
	_, err = f.eng.BookTicket(ctx, req)
	assert.ErrorIs(t, err, ErrIntervalOrder)

	n, err := f.eng.Tickets().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExpiredTicketPurgedOnNextInsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A window that fully elapsed a year ago. The insert's own sweep
	// must not remove the row it just wrote.
	oldDep := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	oldArr := time.Date(2023, 11, 1, 18, 0, 0, 0, time.UTC)
	oldID, err := f.eng.BookTicket(ctx, f.booking(41, oldDep, &oldArr))
	require.NoError(t, err)
	_, err = f.eng.Tickets().GetByID(ctx, oldID)
	require.NoError(t, err)

	// Any unrelated successful insert retires it.
	_, err = f.eng.BookTicket(ctx, f.booking(42, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	_, err = f.eng.Tickets().GetByID(ctx, oldID)
	assert.ErrorIs(t, err, repository.ErrTicketNotFound)
	n, err := f.eng.Tickets().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOpenEndedTicketNeverSwept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	oldDep := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	openID, err := f.eng.BookTicket(ctx, f.booking(41, oldDep, nil))
	require.NoError(t, err)

	_, err = f.eng.BookTicket(ctx, f.booking(42, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	// Unknown arrival means the window never fully elapses.
	_, err = f.eng.Tickets().GetByID(ctx, openID)
	assert.NoError(t, err)
}

func TestCreatePassengerEmailSoftFix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := "invalid-email"
	id, err := f.eng.CreatePassenger(ctx, PassengerFields{
		FirstName:   "Ravi",
		DateOfBirth: time.Date(1985, 1, 20, 0, 0, 0, 0, time.UTC),
		Email:       &bad,
		Phone:       "9123456780",
	})
	require.NoError(t, err)

	got, err := f.eng.Passengers().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Email)

	good := "ravi@example.org"
	id, err = f.eng.CreatePassenger(ctx, PassengerFields{
		FirstName:   "Ravi",
		DateOfBirth: time.Date(1985, 1, 20, 0, 0, 0, 0, time.UTC),
		Email:       &good,
		Phone:       "9123456781",
	})
	require.NoError(t, err)
	got, err = f.eng.Passengers().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, good, *got.Email)
}

func TestCreatePassengerHardRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.eng.CreatePassenger(ctx, PassengerFields{
		FirstName:   "Tiny",
		DateOfBirth: testNow.AddDate(-2, 0, 0),
		Phone:       "9876543210",
	})
	assert.ErrorIs(t, err, ErrAgeOutOfRange)

	_, err = f.eng.CreatePassenger(ctx, PassengerFields{
		FirstName:   "Ravi",
		DateOfBirth: time.Date(1985, 1, 20, 0, 0, 0, 0, time.UTC),
		Phone:       "12345",
	})
	assert.ErrorIs(t, err, ErrMalformedPhone)
}

func TestUpdatePassenger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := "still-not-an-email"
	err := f.eng.UpdatePassenger(ctx, f.holder, PassengerFields{
		FirstName:   "Asha",
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Email:       &bad,
		Phone:       "9000000000",
	})
	require.NoError(t, err)

	got, err := f.eng.Passengers().GetByID(ctx, f.holder)
	require.NoError(t, err)
	assert.Equal(t, "9000000000", got.Phone)
	assert.Nil(t, got.Email)

	err = f.eng.UpdatePassenger(ctx, 999, PassengerFields{
		FirstName:   "Ghost",
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Phone:       "9000000001",
	})
	assert.ErrorIs(t, err, repository.ErrPassengerNotFound)
}

func TestDeletePassengerCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := f.createPassenger(t, "Ravi", "9123456780")
	req := f.booking(51, at(18, 1, 45), atp(18, 23, 0))
	req.PassengerID = other
	_, err := f.eng.BookTicket(ctx, req)
	require.NoError(t, err)
	req = f.booking(52, at(18, 1, 45), atp(18, 23, 0))
	req.PassengerID = other
	_, err = f.eng.BookTicket(ctx, req)
	require.NoError(t, err)
	keptID, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	require.NoError(t, f.eng.DeletePassenger(ctx, other))

	_, err = f.eng.Passengers().GetByID(ctx, other)
	assert.ErrorIs(t, err, repository.ErrPassengerNotFound)
	n, err := f.eng.Tickets().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = f.eng.Tickets().GetByID(ctx, keptID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.eng.DeletePassenger(ctx, other), repository.ErrPassengerNotFound)
}

func TestRescheduleTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)
	_, err = f.eng.BookTicket(ctx, f.booking(42, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	// Shifting within its own window must not conflict with itself.
	newDep := at(18, 2, 0)
	require.NoError(t, f.eng.RescheduleTicket(ctx, id, ChangeRequest{NewDepartsAt: &newDep}))
	got, err := f.eng.Tickets().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.DepartsAt.Equal(newDep))

	// Moving onto an occupied seat is a conflict and changes nothing.
	occupied := uint32(42)
	err = f.eng.RescheduleTicket(ctx, id, ChangeRequest{NewSeatNumber: &occupied})
	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	got, err = f.eng.Tickets().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint32(41), got.SeatNumber)

	// A coach change is validated against the catalog.
	ghost := uint64(999)
	err = f.eng.RescheduleTicket(ctx, id, ChangeRequest{NewCoachID: &ghost})
	assert.ErrorIs(t, err, repository.ErrCoachNotFound)
	require.NoError(t, f.eng.RescheduleTicket(ctx, id, ChangeRequest{NewCoachID: &f.coachB}))

	// Dropping the arrival turns the ticket open-ended.
	require.NoError(t, f.eng.RescheduleTicket(ctx, id, ChangeRequest{ClearArrival: true}))
	got, err = f.eng.Tickets().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.ArrivesAt)

	err = f.eng.RescheduleTicket(ctx, 999, ChangeRequest{})
	assert.ErrorIs(t, err, repository.ErrTicketNotFound)
}

func TestCancelTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	require.NoError(t, f.eng.CancelTicket(ctx, id))
	_, err = f.eng.Tickets().GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrTicketNotFound)
	assert.ErrorIs(t, f.eng.CancelTicket(ctx, id), repository.ErrTicketNotFound)
}
