// Package lockout defines the failed-login lockout strategy as a pluggable
// policy. The login validator only talks to the Policy interface, so a real
// policy (attempt counters with a time-window unlock) can be substituted
// later without touching the validator.
package lockout

import "github.com/saeon/odp-identity/internal/server/models"

// Policy decides whether an account is locked and whether a failed login
// attempt should lock it.
type Policy interface {
	// IsLocked reports whether the account is currently locked out,
	// unlocking it first if the lock has expired.
	IsLocked(user *models.User) bool

	// TryLock registers a failed login attempt and reports whether the
	// account transitioned into the locked state as a result. The caller
	// uses the return value to report "locked" rather than "wrong
	// password".
	TryLock(user *models.User) bool
}

// NoopPolicy is the current placeholder policy: accounts are never locked.
type NoopPolicy struct{}

func NewNoopPolicy() *NoopPolicy { return &NoopPolicy{} }

func (p *NoopPolicy) IsLocked(user *models.User) bool { return false }

func (p *NoopPolicy) TryLock(user *models.User) bool { return false }
