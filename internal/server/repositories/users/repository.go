package users

import (
	"context"

	"github.com/edusys/eduauth/internal/server/models"
)

type Repository interface {
	// Create inserts a new user row. Empty fields yield
	// common.ErrorInvalidArgument, a taken username common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// Exists reports whether a row with exactly the given username and
	// password digest is present. Absence is not an error.
	Exists(ctx context.Context, username, passwordHash string) (bool, error)

	// List returns an unordered snapshot of every user.
	List(ctx context.Context) ([]*models.User, error)
}
