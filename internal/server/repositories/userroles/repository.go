package userroles

import (
	"context"

	"github.com/edusys/eduauth/internal/server/models"
)

type Repository interface {
	// Find returns the grant for (username, role), or nil when the user does
	// not hold the role. Absence is not an error; empty or invalid arguments
	// yield common.ErrorInvalidArgument.
	Find(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error)

	// Grant assigns role to username. Granting an already-held role returns
	// the existing grant without error. A username without a users row yields
	// common.ErrorUserNotFound.
	Grant(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error)

	// Revoke removes the grant. Revoking an absent grant is a no-op.
	Revoke(ctx context.Context, username string, role models.Role) error

	// ListForUser returns every grant held by username.
	ListForUser(ctx context.Context, username string) ([]*models.RoleGrant, error)
}
