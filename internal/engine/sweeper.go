package engine

import (
	"context"
	"database/sql"
	"time"
)

// The lifecycle sweeper retires tickets whose travel window has fully
// elapsed. It runs immediately after every successful ticket insert
// or update, inside the same transaction, and never on passenger
// mutations. It is best-effort housekeeping: a skipped sweep cannot
// violate the overlap invariant, an un-swept expired ticket merely
// keeps blocking its exact seat/time slot until the next sweep.

// sweepThreshold adjusts the evaluation clock by the deployment's
// local-time offset (IST, +05:30, in the reference deployment).
// Stored times are naive local times, so the comparison point must
// shift the same way.
func (e *Engine) sweepThreshold() time.Time {
	return e.clock.Now().UTC().Add(e.localOffset)
}

// sweepExpiredTx purges elapsed tickets, keeping the row written by
// the enclosing mutation. Returns the number purged.
func (e *Engine) sweepExpiredTx(ctx context.Context, tx *sql.Tx, keepID uint64) (int64, error) {
	return e.tickets.DeleteExpiredTx(ctx, tx, e.sweepThreshold(), keepID)
}
