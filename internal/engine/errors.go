// Package engine implements the reservation integrity pipeline:
// every passenger or ticket mutation runs validate → conflict check →
// write → sweep inside a single transaction, so a rejected call
// leaves the store exactly as it was.
package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrAgeOutOfRange is returned when a passenger's date of birth puts
// their age outside [3, 130] years at evaluation time.
var ErrAgeOutOfRange = errors.New("passenger age out of range")

// ErrMalformedPhone is returned when a phone number is not 10 digits
// with a leading digit of 6–9. Unlike email, phone format is a hard
// structural constraint; the row is rejected outright.
var ErrMalformedPhone = errors.New("malformed phone number")

// ErrIntervalOrder is returned when a ticket's arrival time is
// present but not strictly after its departure time.
var ErrIntervalOrder = errors.New("arrival must be strictly after departure")

// ErrFareNotPositive is returned when a ticket's fare is zero.
var ErrFareNotPositive = errors.New("fare must be positive")

// ErrSameStations is returned when a ticket names the same station
// for boarding and destination.
var ErrSameStations = errors.New("departure and arrival stations must differ")

// ErrSameTerminals is returned when a train is declared with
// identical terminal stations.
var ErrSameTerminals = errors.New("train terminals must differ")

// ErrFirstNameRequired is returned when a passenger record has an
// empty first name.
var ErrFirstNameRequired = errors.New("first name is required")

// SeatConflictError reports that a candidate travel window overlaps
// an existing ticket on the same (train, coach, seat). The offending
// ticket's window is carried for diagnostics.
type SeatConflictError struct {
	TrainID           uint64
	CoachID           uint64
	SeatNumber        uint32
	ExistingID        uint64
	ExistingDeparture time.Time
	ExistingArrival   *time.Time
}

func (e *SeatConflictError) Error() string {
	arr := "open-ended"
	if e.ExistingArrival != nil {
		arr = e.ExistingArrival.Format(time.RFC3339)
	}
	return fmt.Sprintf("seat %d in coach %d on train %d already booked for [%s, %s]",
		e.SeatNumber, e.CoachID, e.TrainID,
		e.ExistingDeparture.Format(time.RFC3339), arr)
}
