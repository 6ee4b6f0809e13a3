package model

import "time"

// Ticket is a seat reservation: the primary mutable entity the
// engine protects. For a fixed (train, coach, seat) no two tickets
// may occupy overlapping travel windows; sharing exactly one
// boundary (back-to-back) is permitted. ArrivesAt may be nil, in
// which case the ticket is open-ended and is never auto-purged.
//
// Fields:
//  ID            – primary key identifier.
//  TrainID       – train the seat belongs to.
//  PassengerID   – holder of the ticket; cascade-deleted with them.
//  FromStationID – boarding station; must be a route stop of the train.
//  ToStationID   – destination station; must be a route stop of the train.
//  DepartsAt     – required departure time.
//  ArrivesAt     – optional arrival time, strictly after DepartsAt when set.
//  CoachID       – coach the seat belongs to.
//  SeatNumber    – seat within the coach.
//  FareCents     – fare charged, strictly positive.
//  CreatedAt     – creation timestamp.
type Ticket struct {
	ID            uint64     // tickets.id
	TrainID       uint64     // tickets.train_id
	PassengerID   uint64     // tickets.passenger_id
	FromStationID uint64     // tickets.from_station_id
	ToStationID   uint64     // tickets.to_station_id
	DepartsAt     time.Time  // tickets.departs_at
	ArrivesAt     *time.Time // tickets.arrives_at (nullable)
	CoachID       uint64     // tickets.coach_id
	SeatNumber    uint32     // tickets.seat_number
	FareCents     uint32     // tickets.fare_cents
	CreatedAt     time.Time  // tickets.created_at
}
