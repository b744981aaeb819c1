package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*password\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("alice", "digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "digest"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_EmptyFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	for _, u := range []*models.User{
		{Username: "", PasswordHash: "digest"},
		{Username: "alice", PasswordHash: ""},
	} {
		if _, err := repo.Create(context.Background(), u); !errors.Is(err, common.ErrorInvalidArgument) {
			t.Fatalf("expected ErrorInvalidArgument for %+v, got %v", u, err)
		}
	}
	// the precondition check must never reach storage
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected storage access: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("alice", "digest").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "digest"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("alice", "digest").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "digest"})
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected plain wrapped db error, got %v", err)
	}
}

const existsQ = `(?s)^SELECT\s+1\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+AND\s+password\s*=\s*\$2\s*$`

func TestExists_Match(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).
		WithArgs("alice", "digest").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), "alice", "digest")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestExists_NoMatchIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).
		WithArgs("alice", "wrong").
		WillReturnError(sql.ErrNoRows)

	ok, err := repo.Exists(context.Background(), "alice", "wrong")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password"}).
		AddRow("alice", "d1").
		AddRow("bob", "d2")
	mock.ExpectQuery(`(?s)^SELECT\s+username,\s*password\s+FROM\s+users\s*$`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
