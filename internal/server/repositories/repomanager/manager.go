package repomanager

import (
	"context"
	"database/sql"

	"github.com/saeon/odp-identity/internal/dbx"
	"github.com/saeon/odp-identity/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX (either the shared
// *sql.DB or an open transaction) and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
