package model

import "time"

// Coach is a leaf reference entity describing a physical coach class
// attached to trains (e.g. "D", "S1", "A2"). Coaches are identified
// by a unique code and are read-only from the engine's perspective.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique coach code.
//  CreatedAt – creation timestamp.
type Coach struct {
	ID        uint64    // coaches.id
	Code      string    // coaches.code
	CreatedAt time.Time // coaches.created_at
}
