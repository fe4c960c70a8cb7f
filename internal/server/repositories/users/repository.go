package users

import (
	"context"

	"github.com/saeon/odp-identity/internal/server/models"
)

// Repository is the user store consumed by the identity service.
//
// Reads always hit current storage state; the service never caches User
// records between calls, because lock/active/verified flags can change
// between calls and a stale read would become an authorization bug.
type Repository interface {
	// FindByEmail returns the user with the given email, or
	// common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given id, or common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts the user, or updates all mutable fields when a row with
	// the same id already exists.
	Save(ctx context.Context, user *models.User) error
}
