package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/dbx"
	"github.com/edusys/eduauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Username == "" || user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: a username and a password hash are required", common.ErrorInvalidArgument)
	}

	query :=
		`INSERT INTO users (username, password)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %s", common.ErrorAlreadyExists, user.Username)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, username, passwordHash string) (bool, error) {
	query :=
		`SELECT 1 FROM users
		 WHERE username = $1 AND password = $2
		 `

	var one int
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return true, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT username, password FROM users
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.Username, &user.PasswordHash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
