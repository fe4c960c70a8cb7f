// Package common defines shared constants and sentinel errors used across
// the identity service layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Login and lifecycle validation outcomes. Each validator surfaces the
	// first failing condition and stops; conditions are never aggregated
	// within a single call.
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountLocked      = errors.New("account locked")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailInUse         = errors.New("email address already in use")
	ErrPasswordComplexity = errors.New("password does not meet minimum complexity requirements")

	// Link-token errors (email verification / password reset).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
