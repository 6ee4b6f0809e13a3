package model

import "time"

// Train represents a named train service running between two terminal
// stations. The two terminals must be distinct. A train owns an
// ordered set of RouteStops forming its physical path; it may pass
// each of its stations at most once.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – unique train name (e.g. "Duronto Express").
//  Station1ID – first terminal station.
//  Station2ID – second terminal station (must differ from Station1ID).
//  CreatedAt  – creation timestamp.
type Train struct {
	ID         uint64    // trains.id
	Name       string    // trains.name
	Station1ID uint64    // trains.station1_id
	Station2ID uint64    // trains.station2_id
	CreatedAt  time.Time // trains.created_at
}

// RouteStop is a (train, station) pair denoting a station a given
// train physically stops at. Position orders the stops along the
// route. A stop cannot be removed while tickets reference it.
//
// Fields:
//  ID        – primary key identifier.
//  TrainID   – owning train.
//  StationID – station the train stops at.
//  Position  – 1-based order of the stop along the route.
type RouteStop struct {
	ID        uint64 // route_stops.id
	TrainID   uint64 // route_stops.train_id
	StationID uint64 // route_stops.station_id
	Position  uint32 // route_stops.position
}
