package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/server/auth"
	"github.com/edusys/eduauth/internal/server/config"
)

// Security is the authorization gateway of the REST boundary. It bundles the
// three verification entry points every endpoint composes: the static API-key
// check identifying the calling service, credential verification, and bearer
// token verification. All state is immutable after construction.
type Security struct {
	apiKeys     map[string]struct{}
	users       UserDirectory
	tokenSecret []byte
	tokenTTL    time.Duration
}

// NewSecurity builds a Security from the process configuration and the user
// service handling credential lookups.
func NewSecurity(cfg *config.Config, users UserDirectory) *Security {
	keys := make(map[string]struct{}, len(cfg.AuthorizedAPIKeys))
	for _, k := range cfg.AuthorizedAPIKeys {
		keys[k] = struct{}{}
	}
	return &Security{
		apiKeys:     keys,
		users:       users,
		tokenSecret: []byte(cfg.TokenSecret),
		tokenTTL:    cfg.TokenTTL,
	}
}

// VerifyAPIKey checks key against the configured allow-list. A key outside
// the list is rejected regardless of any other credential presented.
func (s *Security) VerifyAPIKey(key string) error {
	if _, ok := s.apiKeys[key]; !ok {
		return fmt.Errorf("%w: invalid API key", common.ErrorUnauthorized)
	}
	return nil
}

// VerifyCredentials checks username/password against the stored digests and
// returns the verified identity. A mismatch yields common.ErrorUnauthorized;
// storage failures propagate unchanged.
func (s *Security) VerifyCredentials(ctx context.Context, username, password string) (string, error) {
	ok, err := s.users.UserExists(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}
	return username, nil
}

// VerifyToken validates a bearer token and returns its claim set. Any
// failure (bad signature, malformed token, past expiry) is
// common.ErrorUnauthorized; validation never mutates anything.
func (s *Security) VerifyToken(tokenString string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(tokenString, s.tokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	return claims, nil
}

// IssueToken mints a fresh signed token for the given identity, expiring
// after the configured TTL.
func (s *Security) IssueToken(username string) (string, error) {
	return auth.GenerateToken(username, s.tokenSecret, s.tokenTTL)
}
