// Package services contains server-side business logic. This file
// implements IdentityService: credential validation for interactive and
// trusted login, account lifecycle (signup, email verification, password
// reset), and opportunistic password-hash upgrades.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saeon/odp-identity/internal/common"
	"github.com/saeon/odp-identity/internal/dbx"
	"github.com/saeon/odp-identity/internal/lockout"
	"github.com/saeon/odp-identity/internal/logging"
	"github.com/saeon/odp-identity/internal/password"
	"github.com/saeon/odp-identity/internal/server/models"
	"github.com/saeon/odp-identity/internal/server/repositories/repomanager"
)

// IdentityService owns the security-sensitive decision logic around user
// credentials. Validation calls re-read current storage state every time;
// nothing is cached between calls, because lock/active/verified flags can
// change concurrently.
type IdentityService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	hasher  *password.Argon2
	lockout lockout.Policy
	log     logging.Logger
}

// NewIdentityService constructs an IdentityService. The hasher and the
// lockout policy are injected rather than being package-level singletons, so
// tests can supply cheap parameters and a future lockout policy can be
// swapped in without touching the validators.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, hasher *password.Argon2, policy lockout.Policy, log logging.Logger) *IdentityService {
	return &IdentityService{
		db:      db,
		repos:   m,
		hasher:  hasher,
		lockout: policy,
		log:     log,
	}
}

// ValidateLogin validates the credentials supplied via the login form and
// returns the user on success.
//
// The check order is a contract, chosen to minimize what a probing attacker
// can learn: ErrUserNotFound, then ErrAccountLocked (before any password
// work, so a locked account never reveals whether the password was right),
// then ErrIncorrectPassword, and only after proof of password
// ErrAccountDisabled and ErrEmailNotVerified.
func (s *IdentityService) ValidateLogin(ctx context.Context, email, pw string) (*models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.lockout.IsLocked(user) {
		return nil, common.ErrAccountLocked
	}

	ok, err := s.hasher.Verify(user.PasswordHash, pw)
	if err != nil {
		// A stored hash that does not parse is a data-integrity fault,
		// never reported as an incorrect password.
		return nil, fmt.Errorf("verifying stored hash for user %s: %w", user.ID, err)
	}
	if !ok {
		if s.lockout.TryLock(user) {
			return nil, common.ErrAccountLocked
		}
		return nil, common.ErrIncorrectPassword
	}

	if err := s.rehashIfNeeded(ctx, user, pw); err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, common.ErrAccountDisabled
	}

	if !user.Verified {
		return nil, common.ErrEmailNotVerified
	}

	return user, nil
}

// ValidateAutoLogin validates a login for which the surrounding OAuth2 flow
// has indicated the user is already authenticated. Same ordering as
// ValidateLogin minus the password step: no comparison, no rehash.
func (s *IdentityService) ValidateAutoLogin(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if s.lockout.IsLocked(user) {
		return nil, common.ErrAccountLocked
	}

	if !user.Active {
		return nil, common.ErrAccountDisabled
	}

	if !user.Verified {
		return nil, common.ErrEmailNotVerified
	}

	return user, nil
}

// ValidateSignup validates the credentials supplied by a new user:
// ErrEmailInUse if the address is taken, ErrPasswordComplexity if the
// password fails the policy. It is a pure gate; CreateAccount does the work.
func (s *IdentityService) ValidateSignup(ctx context.Context, email, pw string) error {
	exists, err := s.repos.Users(s.db).ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return common.ErrEmailInUse
	}

	if !password.CheckComplexity(email, pw) {
		return common.ErrPasswordComplexity
	}

	return nil
}

// CreateAccount creates a new user account with the specified credentials.
// The caller is expected to have run ValidateSignup first. The password is
// hashed with Argon2id; the account starts active and unverified.
func (s *IdentityService) CreateAccount(ctx context.Context, email, pw string) (*models.User, error) {
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Superuser:    false,
		Active:       true,
		Verified:     false,
	}

	if err := s.repos.Users(s.db).Save(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "account created", "user_id", user.ID)

	return user, nil
}

// ValidateForgotPassword validates that a forgotten-password request may
// proceed for the given address. Verified status is deliberately not
// checked: a user may reset a password before verifying their email.
func (s *IdentityService) ValidateForgotPassword(ctx context.Context, email string) (*models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.lockout.IsLocked(user) {
		return nil, common.ErrAccountLocked
	}

	if !user.Active {
		return nil, common.ErrAccountDisabled
	}

	return user, nil
}

// ValidatePasswordReset validates a new password chosen by the user. The
// caller is responsible for subsequently calling SetPassword.
func (s *IdentityService) ValidatePasswordReset(ctx context.Context, email, newPassword string) (*models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !password.CheckComplexity(email, newPassword) {
		return nil, common.ErrPasswordComplexity
	}

	return user, nil
}

// ValidateEmailVerification validates an email verification request. The
// caller subsequently calls SetVerified.
func (s *IdentityService) ValidateEmailVerification(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmail(ctx, email)
}

// SetVerified updates the verified status of a user. Idempotent: setting an
// already-verified account verified again is not an error.
func (s *IdentityService) SetVerified(ctx context.Context, user *models.User, verified bool) error {
	user.Verified = verified

	if err := s.saveTx(ctx, user); err != nil {
		return fmt.Errorf("error updating verified status: %w", err)
	}

	s.log.Info(ctx, "verified status updated", "user_id", user.ID, "verified", verified)

	return nil
}

// SetPassword replaces a user's password; hashing happens here.
func (s *IdentityService) SetPassword(ctx context.Context, user *models.User, pw string) error {
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.saveTx(ctx, user); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.log.Info(ctx, "password updated", "user_id", user.ID)

	return nil
}

// --- helpers below ---

func (s *IdentityService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repos.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// rehashIfNeeded upgrades the stored hash when the hashing defaults have
// moved on since the password was stored. It re-derives from the
// just-verified plain text, so a concurrent administrative password change
// losing to this write is acceptable (last-write-wins on the hash column).
func (s *IdentityService) rehashIfNeeded(ctx context.Context, user *models.User, pw string) error {
	needs, err := s.hasher.NeedsRehash(user.PasswordHash)
	if err != nil {
		return fmt.Errorf("inspecting stored hash for user %s: %w", user.ID, err)
	}
	if !needs {
		return nil
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return fmt.Errorf("error rehashing password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.saveTx(ctx, user); err != nil {
		return fmt.Errorf("error persisting rehashed password: %w", err)
	}

	s.log.Info(ctx, "stored password hash upgraded", "user_id", user.ID)

	return nil
}

// saveTx persists a mutated user record inside a transaction, so a crash
// mid-write leaves the stored row unchanged rather than partially updated.
func (s *IdentityService) saveTx(ctx context.Context, user *models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).Save(ctx, user)
	})
}
