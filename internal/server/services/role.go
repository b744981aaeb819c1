package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/dbx"
	"github.com/edusys/eduauth/internal/server/config"
	"github.com/edusys/eduauth/internal/server/models"
	"github.com/edusys/eduauth/internal/server/repositories/repomanager"
)

// RoleService answers role-membership questions and mutates grants. Role
// names arrive as strings from the boundary; the service re-validates them
// against the closed enumeration even though callers are expected to
// validate first.
type RoleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRoleService constructs a RoleService over the shared store handle.
func NewRoleService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *RoleService {
	return &RoleService{db: db, repomanager: m}
}

// HasRole reports whether username holds the named role. An unparseable role
// name or an unknown user means "role not held", never an error; only
// storage failures surface.
func (s *RoleService) HasRole(ctx context.Context, username, roleName string) (bool, error) {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return false, nil
	}
	if username == "" {
		return false, nil
	}

	repo := s.repomanager.UserRoles(s.db)
	grant, err := repo.Find(ctx, username, role)
	if err != nil {
		return false, err
	}
	return grant != nil, nil
}

// ListUserRoles returns the role names granted to username. An empty
// username propagates common.ErrorInvalidArgument.
func (s *RoleService) ListUserRoles(ctx context.Context, username string) ([]string, error) {
	repo := s.repomanager.UserRoles(s.db)
	grants, err := repo.ListForUser(ctx, username)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(grants))
	for _, g := range grants {
		out = append(out, g.Role.String())
	}
	return out, nil
}

// GrantRole grants the named role to username inside a transaction, so the
// membership check and the insert commit as one unit. Granting a held role
// is idempotent. Unknown role names and a missing user propagate as
// common.ErrUnknownRole and common.ErrorUserNotFound respectively.
func (s *RoleService) GrantRole(ctx context.Context, username, roleName string) (*models.RoleGrant, error) {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	var grant *models.RoleGrant
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.UserRoles(tx)
		var grantErr error
		grant, grantErr = repo.Grant(ctx, username, role)
		return grantErr
	})
	if err != nil {
		return nil, err
	}
	return grant, nil
}

// RevokeRole removes the named grant from username; revoking an absent grant
// is a no-op. Unknown role names propagate as common.ErrUnknownRole.
func (s *RoleService) RevokeRole(ctx context.Context, username, roleName string) error {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.UserRoles(tx)
		return repo.Revoke(ctx, username, role)
	})
}

// IsRoleArgumentError reports whether err is a caller mistake (missing or
// unparseable arguments) rather than a storage failure.
func IsRoleArgumentError(err error) bool {
	return errors.Is(err, common.ErrorInvalidArgument) || errors.Is(err, common.ErrUnknownRole)
}
