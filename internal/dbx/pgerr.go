package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (duplicate primary key or unique index).
func IsUniqueViolation(err error) bool {
	return isPgCode(err, pgUniqueViolation)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL referential
// integrity violation.
func IsForeignKeyViolation(err error) bool {
	return isPgCode(err, pgForeignKeyViolation)
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
