package repomanager

import (
	"context"
	"database/sql"

	"github.com/edusys/eduauth/internal/dbx"
	"github.com/edusys/eduauth/internal/server/repositories/userroles"
	"github.com/edusys/eduauth/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	UserRoles(db dbx.DBTX) userroles.Repository
}
