// Package users contains the user store interface and its PostgreSQL
// implementation.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saeon/odp-identity/internal/common"
	"github.com/saeon/odp-identity/internal/dbx"
	"github.com/saeon/odp-identity/internal/server/models"
)

// PostgresRepository implements Repository on top of a dbx.DBTX, so the
// same code runs against *sql.DB for plain reads and against *sql.Tx inside
// read-modify-write transactions.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password, superuser, active, verified, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password, superuser, active, verified, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Save(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, email, password, superuser, active, verified)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET email = EXCLUDED.email,
		     password = EXCLUDED.password,
		     superuser = EXCLUDED.superuser,
		     active = EXCLUDED.active,
		     verified = EXCLUDED.verified
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Superuser, user.Active, user.Verified)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash,
		&user.Superuser, &user.Active, &user.Verified, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
