// Package repository defines error types that are reused across
// multiple repositories. These sentinel values let higher layers such
// as the engine and the HTTP handlers distinguish failure scenarios
// with errors.Is. Every referential failure (a mutation naming a
// station, train, coach or passenger that does not exist, or a
// train/station pair that is not a declared stop) maps to one of the
// *NotFound / ErrNotAStop values below.
package repository

import "errors"

// ErrStationNotFound is returned when a referenced station does not exist.
var ErrStationNotFound = errors.New("station not found")

// ErrCoachNotFound is returned when a referenced coach does not exist.
var ErrCoachNotFound = errors.New("coach not found")

// ErrTrainNotFound is returned when a referenced train does not exist.
var ErrTrainNotFound = errors.New("train not found")

// ErrPassengerNotFound is returned when a referenced passenger does not exist.
var ErrPassengerNotFound = errors.New("passenger not found")

// ErrTicketNotFound is returned when a referenced ticket does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrClerkNotFound is returned when a clerk account does not exist.
var ErrClerkNotFound = errors.New("clerk not found")

// ErrNotAStop is returned when a train/station pair is not a declared
// route stop of that train.
var ErrNotAStop = errors.New("station is not a stop of this train")

// ErrStopInUse is returned when a route stop cannot be removed
// because tickets still reference its station on that train.
// Handlers should translate this into an HTTP 409 response.
var ErrStopInUse = errors.New("route stop is referenced by tickets")

// ErrDuplicateStop is returned when a train already stops at the
// station being added; a train passes each station at most once.
var ErrDuplicateStop = errors.New("train already stops at this station")
