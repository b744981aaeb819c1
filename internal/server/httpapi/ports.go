package httpapi

import (
	"context"

	"github.com/edusys/eduauth/internal/server/models"
)

// UserDirectory is the slice of the user service the boundary consumes.
// Implemented by services.UserService.
type UserDirectory interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	UserExists(ctx context.Context, username, password string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// RoleAuthority answers and mutates role membership.
// Implemented by services.RoleService.
type RoleAuthority interface {
	HasRole(ctx context.Context, username, roleName string) (bool, error)
	ListUserRoles(ctx context.Context, username string) ([]string, error)
	GrantRole(ctx context.Context, username, roleName string) (*models.RoleGrant, error)
	RevokeRole(ctx context.Context, username, roleName string) error
}
