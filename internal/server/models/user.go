// Package models holds the plain data records persisted by the identity
// service. Records are loaded, mutated on a copy, and saved back explicitly;
// there is no live ORM-style binding to the database.
package models

import "time"

// User is the transient in-memory view of a user account held during a
// single validation call. It is mutated only by the lifecycle operations
// (SetPassword, SetVerified) and the login validator's rehash side effect.
type User struct {
	ID           string
	Email        string
	PasswordHash string // Argon2id PHC string; never compared by equality
	Active       bool
	Verified     bool
	Superuser    bool
	CreatedAt    time.Time
}
