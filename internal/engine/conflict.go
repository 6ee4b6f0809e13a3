package engine

import (
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// The conflict detector guards the central invariant: for a fixed
// (train, coach, seat), no two tickets' travel windows may overlap.
// Sharing exactly one boundary is not a conflict, so back-to-back
// bookings on the same seat are allowed. An open-ended ticket (nil
// arrival) occupies the single instant of its departure.

// overlaps reports whether two travel windows collide on the same
// seat. All comparisons are strict where a shared boundary must stay
// legal.
func overlaps(candDep time.Time, candArr *time.Time, exDep time.Time, exArr *time.Time) bool {
	switch {
	case candArr != nil && exArr != nil:
		// Closed vs closed: positive-length intersection.
		return candDep.Before(*exArr) && exDep.Before(*candArr)
	case candArr != nil:
		// Existing is open-ended: conflict when the candidate window
		// covers its departure instant.
		return !exDep.Before(candDep) && exDep.Before(*candArr)
	case exArr != nil:
		// Candidate is open-ended: conflict when its departure lands
		// inside the existing window. Touching the arrival boundary
		// is a legal hand-off.
		return !candDep.Before(exDep) && candDep.Before(*exArr)
	default:
		// Both open-ended: only simultaneous departures collide.
		return candDep.Equal(exDep)
	}
}

// checkConflict scans the existing tickets for the candidate's
// (train, coach, seat) triple and returns a *SeatConflictError for
// the first overlapping window found, or nil. It is a pure
// read-then-decide gate with no side effects; the engine runs it
// inside the same transaction as the write it guards.
func checkConflict(cand *model.Ticket, existing []model.Ticket) error {
	for i := range existing {
		ex := &existing[i]
		if overlaps(cand.DepartsAt, cand.ArrivesAt, ex.DepartsAt, ex.ArrivesAt) {
			return &SeatConflictError{
				TrainID:           cand.TrainID,
				CoachID:           cand.CoachID,
				SeatNumber:        cand.SeatNumber,
				ExistingID:        ex.ID,
				ExistingDeparture: ex.DepartsAt,
				ExistingArrival:   ex.ArrivesAt,
			}
		}
	}
	return nil
}
