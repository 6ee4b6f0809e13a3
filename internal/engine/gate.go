package engine

import (
	"regexp"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/model"
)

// The validation gate enforces passenger field invariants on insert
// and update, before the store accepts the row. Age and phone are
// hard rejects; a malformed email is a soft constraint corrected to
// absent after the write.

// phonePattern matches a 10-digit number whose leading digit is 6–9.
var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// emailPattern is the minimal x@y.z shape: one "@" and a dotted
// domain, nothing more.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validatePassenger applies the hard field invariants. now is the
// evaluation clock. The age bounds are inclusive on the reject side:
// a date of birth exactly 3 years ago is still too young, while one
// exactly 130 years ago is still accepted.
func validatePassenger(p *model.Passenger, now time.Time) error {
	if p.FirstName == "" {
		return ErrFirstNameRequired
	}
	youngest := now.AddDate(-3, 0, 0)
	oldest := now.AddDate(-130, 0, 0)
	dob := p.DateOfBirth
	if !dob.Before(youngest) {
		return ErrAgeOutOfRange
	}
	if dob.Before(oldest) {
		return ErrAgeOutOfRange
	}
	if !phonePattern.MatchString(p.Phone) {
		return ErrMalformedPhone
	}
	return nil
}

// emailAcceptable reports whether an address passes the minimal
// format check. Re-checking an already-nulled email is a no-op at
// the call site, so the soft fix is idempotent.
func emailAcceptable(email string) bool {
	return emailPattern.MatchString(email)
}

// validateInterval applies the ticket-shape invariants: a present
// arrival must be strictly after departure and the fare must be
// positive.
func validateInterval(departs time.Time, arrives *time.Time, fareCents uint32) error {
	if arrives != nil && !arrives.After(departs) {
		return ErrIntervalOrder
	}
	if fareCents == 0 {
		return ErrFareNotPositive
	}
	return nil
}
