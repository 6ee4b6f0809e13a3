// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// TicketBookedEvent is published after a reservation commits. It
// carries enough information for downstream consumers to log or
// notify without querying the primary database. EventID is a UUID
// assigned by the publisher so consumers can deduplicate redeliveries.
type TicketBookedEvent struct {
	EventID       string  `json:"event_id"`
	TicketID      uint64  `json:"ticket_id"`
	PassengerID   uint64  `json:"passenger_id"`
	TrainName     string  `json:"train_name"`
	CoachCode     string  `json:"coach"`
	SeatNumber    uint32  `json:"seat_number"`
	FromStation   string  `json:"from_station"`
	ToStation     string  `json:"to_station"`
	DepartsAt     string  `json:"departs_at"`
	ArrivesAt     *string `json:"arrives_at,omitempty"`
	FareCents     uint32  `json:"fare_cents"`
	BookedAt      string  `json:"booked_at"`
}
