package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/dbx"
	"github.com/edusys/eduauth/internal/server/auth"
	"github.com/edusys/eduauth/internal/server/config"
	"github.com/edusys/eduauth/internal/server/models"
	"github.com/edusys/eduauth/internal/server/repositories/userroles"
	usersrepo "github.com/edusys/eduauth/internal/server/repositories/users"
)

// --- fakes ---

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	existsFor map[string]string // username -> stored digest
	users     []*models.User
	listErr   error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, username, passwordHash string) (bool, error) {
	return f.existsFor[username] == passwordHash, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

type fakeRolesRepo struct {
	grants map[string][]models.Role

	grantErr  error
	revokeErr error
}

func (f *fakeRolesRepo) held(username string, role models.Role) bool {
	for _, r := range f.grants[username] {
		if r == role {
			return true
		}
	}
	return false
}

func (f *fakeRolesRepo) Find(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error) {
	if f.held(username, role) {
		return &models.RoleGrant{Username: username, Role: role}, nil
	}
	return nil, nil
}

func (f *fakeRolesRepo) Grant(ctx context.Context, username string, role models.Role) (*models.RoleGrant, error) {
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	if !f.held(username, role) {
		if f.grants == nil {
			f.grants = map[string][]models.Role{}
		}
		f.grants[username] = append(f.grants[username], role)
	}
	return &models.RoleGrant{Username: username, Role: role}, nil
}

func (f *fakeRolesRepo) Revoke(ctx context.Context, username string, role models.Role) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	kept := f.grants[username][:0]
	for _, r := range f.grants[username] {
		if r != role {
			kept = append(kept, r)
		}
	}
	f.grants[username] = kept
	return nil
}

func (f *fakeRolesRepo) ListForUser(ctx context.Context, username string) ([]*models.RoleGrant, error) {
	if username == "" {
		return nil, common.ErrorInvalidArgument
	}
	var out []*models.RoleGrant
	for _, r := range f.grants[username] {
		out = append(out, &models.RoleGrant{Username: username, Role: r})
	}
	return out, nil
}

type fakeRepoManager struct {
	usersRepo usersrepo.Repository
	rolesRepo userroles.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return f.usersRepo }
func (f *fakeRepoManager) UserRoles(dbx.DBTX) userroles.Repository     { return f.rolesRepo }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PasswordSalt = "test salt"
	return cfg
}

// --- tests ---

func TestCreateUser_HashesWithUsernameAndSalt(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: repo}, testConfig())

	u, err := svc.CreateUser(context.Background(), "bob", "secret")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	want := auth.HashPassword("secret", "bob", "test salt")
	if u.PasswordHash != want || repo.created.PasswordHash != want {
		t.Fatalf("digest mismatch: got %q want %q", u.PasswordHash, want)
	}
}

func TestCreateUser_EmptyFields(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: repo}, testConfig())

	for _, c := range [][2]string{{"", "secret"}, {"bob", ""}} {
		_, err := svc.CreateUser(context.Background(), c[0], c[1])
		if !errors.Is(err, common.ErrorInvalidArgument) {
			t.Fatalf("expected ErrorInvalidArgument for %v, got %v", c, err)
		}
	}
	if repo.created != nil {
		t.Fatalf("precondition failure must not reach the repository")
	}
}

func TestCreateUser_UsernameTooLong(t *testing.T) {
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: &fakeUsersRepo{}}, testConfig())

	long := "a-username-well-beyond-thirty-two-characters"
	_, err := svc.CreateUser(context.Background(), long, "secret")
	if !errors.Is(err, common.ErrorInvalidArgument) {
		t.Fatalf("expected ErrorInvalidArgument, got %v", err)
	}
}

func TestCreateUser_DuplicatePropagates(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrorAlreadyExists}
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: repo}, testConfig())

	_, err := svc.CreateUser(context.Background(), "bob", "secret")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestUserExists_RoundTrip(t *testing.T) {
	cfg := testConfig()
	digest := auth.HashPassword("secret", "bob", cfg.PasswordSalt)
	repo := &fakeUsersRepo{existsFor: map[string]string{"bob": digest}}
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: repo}, cfg)

	ok, err := svc.UserExists(context.Background(), "bob", "secret")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.UserExists(context.Background(), "bob", "wrong")
	if err != nil || ok {
		t.Fatalf("expected no match for wrong password, got ok=%v err=%v", ok, err)
	}
}

func TestListUsers(t *testing.T) {
	repo := &fakeUsersRepo{users: []*models.User{{Username: "alice"}, {Username: "bob"}}}
	svc := NewUserService(nil, &fakeRepoManager{usersRepo: repo}, testConfig())

	got, err := svc.ListUsers(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
}
