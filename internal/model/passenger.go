package model

import "time"

// Passenger represents a traveller who can hold tickets. The phone
// number is a hard structural constraint (10 digits, leading digit
// 6–9) enforced before the row is accepted. The email is a soft
// constraint: a malformed address is nulled out after the write
// rather than rejected. Date of birth must represent an age between
// 3 and 130 years at evaluation time.
//
// Fields:
//  ID          – primary key identifier.
//  FirstName   – required given name.
//  LastName    – optional family name.
//  DateOfBirth – date of birth (date precision).
//  Email       – optional contact address, nulled when malformed.
//  Phone       – required 10-digit contact number.
//  CreatedAt   – creation timestamp.
type Passenger struct {
	ID          uint64    // passengers.id
	FirstName   string    // passengers.first_name
	LastName    *string   // passengers.last_name (nullable)
	DateOfBirth time.Time // passengers.date_of_birth
	Email       *string   // passengers.email (nullable)
	Phone       string    // passengers.phone
	CreatedAt   time.Time // passengers.created_at
}
