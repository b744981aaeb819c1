// Package services contains server-side business logic. This file implements
// UserService, which handles user creation and equality-based credential
// verification against the stored digests.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/server/auth"
	"github.com/edusys/eduauth/internal/server/config"
	"github.com/edusys/eduauth/internal/server/models"
	"github.com/edusys/eduauth/internal/server/repositories/repomanager"
)

// UserService provides user-related operations:
// - CreateUser: create users with a salted credential digest
// - UserExists: verify credentials by exact digest match
// - ListUsers: snapshot of every registered user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	salt        string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		salt:        cfg.PasswordSalt,
	}
}

// CreateUser hashes the password and inserts the user as a single atomic
// write. Empty fields or an over-long username yield
// common.ErrorInvalidArgument before any storage access; a taken username
// yields common.ErrorAlreadyExists and leaves existing data untouched.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: a username and a password are required", common.ErrorInvalidArgument)
	}
	if len(username) > models.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username exceeds %d characters", common.ErrorInvalidArgument, models.MaxUsernameLength)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: auth.HashPassword(password, username, s.salt),
	}

	repo := s.repomanager.Users(s.db)
	return repo.Create(ctx, user)
}

// UserExists reports whether the given credentials match a stored user.
// A wrong password or an unknown username both return false without error.
func (s *UserService) UserExists(ctx context.Context, username, password string) (bool, error) {
	repo := s.repomanager.Users(s.db)
	return repo.Exists(ctx, username, auth.HashPassword(password, username, s.salt))
}

// ListUsers returns the full, unordered user snapshot.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.List(ctx)
}
