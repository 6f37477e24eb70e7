// Package repomanager wires entity repositories over a shared database
// handle, so services can run them against either *sql.DB or an open
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Muliro1/alx-files-manager/internal/dbx"
	"github.com/Muliro1/alx-files-manager/internal/server/repositories/entries"
	"github.com/Muliro1/alx-files-manager/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
