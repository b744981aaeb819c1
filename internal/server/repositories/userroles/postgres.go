package userroles

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

func validateArgs(username string, role models.Role) error {
	if username == "" || !role.Valid() {
		return fmt.Errorf("%w: a username and a role name are required", common.ErrorInvalidArgument)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error) {
	if err := validateArgs(username, role); err != nil {
		return nil, err
	}

	query :=
		`SELECT username, role FROM user_roles
		 WHERE username = $1 AND role = $2
		 `

	grant := &models.RoleGrant{}
	var roleName string
	err := r.db.QueryRowContext(ctx, query, username, role.String()).Scan(&grant.Username, &roleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	grant.Role, err = models.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return grant, nil
}

func (r *PostgresRepository) Grant(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error) {
	existing, err := r.Find(ctx, username, role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query :=
		`INSERT INTO user_roles (username, role)
		 VALUES ($1, $2)
		 `

	_, err = r.db.ExecContext(ctx, query, username, role.String())
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrorUserNotFound, username)
		}
		if dbx.IsUniqueViolation(err) {
			// lost a race against a concurrent identical grant
			return &models.RoleGrant{Username: username, Role: role}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &models.RoleGrant{Username: username, Role: role}, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, username string, role models.Role) error {
	if err := validateArgs(username, role); err != nil {
		return err
	}

	query :=
		`DELETE FROM user_roles
		 WHERE username = $1 AND role = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, username, role.String()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, username string) ([]*models.RoleGrant, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: a username is required", common.ErrorInvalidArgument)
	}

	query :=
		`SELECT username, role FROM user_roles
		 WHERE username = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RoleGrant
	for rows.Next() {
		grant := &models.RoleGrant{}
		var roleName string
		if err := rows.Scan(&grant.Username, &roleName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if grant.Role, err = models.ParseRole(roleName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
