package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******3210", maskPhone("9876543210"))
	assert.Equal(t, "******6789", maskPhone("6789"))
	assert.Equal(t, "******", maskPhone("91"))
	assert.Equal(t, "******", maskPhone(""))
}

func TestActiveViewsHideElapsedTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The only ticket is long elapsed; it survives its own insert's
	// sweep but the views must not show it or its holder.
	oldDep := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	oldArr := time.Date(2023, 11, 1, 18, 0, 0, 0, time.UTC)
	_, err := f.eng.BookTicket(ctx, f.booking(41, oldDep, &oldArr))
	require.NoError(t, err)

	tickets, err := f.eng.ListActiveTickets(ctx, TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, tickets)

	passengers, err := f.eng.ListActivePassengers(ctx)
	require.NoError(t, err)
	assert.Empty(t, passengers)
}

func TestListActiveTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := f.createPassenger(t, "Ravi", "9123456780")
	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)
	req := f.booking(42, at(19, 6, 0), atp(19, 22, 0))
	req.PassengerID = other
	_, err = f.eng.BookTicket(ctx, req)
	require.NoError(t, err)
	// Open-ended tickets are always active.
	_, err = f.eng.BookTicket(ctx, f.booking(43, at(20, 8, 0), nil))
	require.NoError(t, err)

	all, err := f.eng.ListActiveTickets(ctx, TicketFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by departure.
	assert.Equal(t, uint32(41), all[0].SeatNumber)
	assert.Equal(t, "Duronto Express", all[0].TrainName)
	assert.Equal(t, "Asha", all[0].PassengerName)
	assert.Equal(t, "******3210", all[0].MaskedPhone)
	assert.Equal(t, "Howrah", all[0].FromStation)
	assert.Equal(t, "Mumbai CST", all[0].ToStation)
	assert.Equal(t, "S1", all[0].CoachCode)
	require.NotNil(t, all[0].ArrivesAt)
	assert.Equal(t, "2024-12-18 23:00:00", *all[0].ArrivesAt)
	assert.Nil(t, all[2].ArrivesAt)

	byHolder, err := f.eng.ListActiveTickets(ctx, TicketFilter{PassengerID: &other})
	require.NoError(t, err)
	require.Len(t, byHolder, 1)
	assert.Equal(t, uint32(42), byHolder[0].SeatNumber)
	assert.Equal(t, "******6780", byHolder[0].MaskedPhone)

	byTrain, err := f.eng.ListActiveTickets(ctx, TicketFilter{TrainID: &f.train})
	require.NoError(t, err)
	assert.Len(t, byTrain, 3)

	ghost := uint64(999)
	none, err := f.eng.ListActiveTickets(ctx, TicketFilter{TrainID: &ghost})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListActivePassengersMasksContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two passengers, one with an active ticket, one without.
	f.createPassenger(t, "Ravi", "9123456780")
	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	active, err := f.eng.ListActivePassengers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.holder, active[0].ID)
	assert.Equal(t, "Asha", active[0].FirstName)
	assert.Equal(t, "******3210", active[0].MaskedPhone)
	assert.Equal(t, "1990-05-10", active[0].DateOfBirth)
}

func TestListTrainStops(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two boardings at the first stop; the view reports the earliest.
	_, err := f.eng.BookTicket(ctx, f.booking(41, at(18, 6, 0), atp(18, 23, 0)))
	require.NoError(t, err)
	_, err = f.eng.BookTicket(ctx, f.booking(42, at(18, 1, 45), atp(18, 23, 0)))
	require.NoError(t, err)

	stops, err := f.eng.ListTrainStops(ctx, f.train)
	require.NoError(t, err)
	require.Len(t, stops, 3)
	assert.Equal(t, []uint64{f.stationA, f.stationB, f.stationC},
		[]uint64{stops[0].StationID, stops[1].StationID, stops[2].StationID})
	assert.Equal(t, "Howrah", stops[0].StationName)
	require.NotNil(t, stops[0].ScheduledDeparture)
	assert.Equal(t, "2024-12-18 01:45:00", *stops[0].ScheduledDeparture)
	assert.Nil(t, stops[1].ScheduledDeparture)
	assert.Nil(t, stops[2].ScheduledDeparture)

	_, err = f.eng.ListTrainStops(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrTrainNotFound)
}
