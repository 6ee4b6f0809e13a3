package model

import "time"

// Station is a leaf reference entity describing a railway station.
// Stations are identified by a unique name and are never mutated by
// the booking engine; they exist so trains, route stops and tickets
// can reference them.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique station name.
//  CreatedAt – creation timestamp.
type Station struct {
	ID        uint64    // stations.id
	Name      string    // stations.name
	CreatedAt time.Time // stations.created_at
}
