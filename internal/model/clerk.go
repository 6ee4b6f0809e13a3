package model

import "time"

// Clerk is a booking-office account allowed to perform mutations
// through the HTTP layer. Only the bcrypt hash of the password is
// stored.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login address.
//  PasswordHash – bcrypt hash of the password.
//  IsActive     – whether the account may log in.
//  CreatedAt    – creation timestamp.
type Clerk struct {
	ID           uint64    // clerks.id
	Email        string    // clerks.email
	PasswordHash string    // clerks.password_hash
	IsActive     bool      // clerks.is_active
	CreatedAt    time.Time // clerks.created_at
}
