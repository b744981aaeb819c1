package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"eduauth-server"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	require.Equal(t, "127.0.0.1:4000", cfg.EndpointAddr)
	require.Equal(t, 3600*time.Second, cfg.TokenTTL)
	require.True(t, cfg.Debug)
	require.Empty(t, cfg.AuthorizedAPIKeys)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-a", ":9000", "-t", "60", "-k", "frontend-key, backend-key")

	cfg := LoadConfig()

	require.Equal(t, ":9000", cfg.EndpointAddr)
	require.Equal(t, 60*time.Second, cfg.TokenTTL)
	require.Equal(t, []string{"frontend-key", "backend-key"}, cfg.AuthorizedAPIKeys)
}

func TestLoadConfig_FlagsOverrideYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.yaml")
	yml := `
endpoint_addr: "0.0.0.0:4000"
db_connection_string: "postgres://auth:auth@db:5432/auth"
debug: false
salt: "file salt"
token_secret: "file secret"
token_ttl: 120
authorized_api_keys:
  - frontend-key
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	withArgs(t, "-c", path, "-a", ":5000")

	cfg := LoadConfig()

	require.Equal(t, ":5000", cfg.EndpointAddr) // flag wins
	require.Equal(t, "postgres://auth:auth@db:5432/auth", cfg.DatabaseDSN)
	require.False(t, cfg.Debug)
	require.Equal(t, "file salt", cfg.PasswordSalt)
	require.Equal(t, "file secret", cfg.TokenSecret)
	require.Equal(t, 120*time.Second, cfg.TokenTTL)
	require.Equal(t, []string{"frontend-key"}, cfg.AuthorizedAPIKeys)
}

func TestLoadConfig_PartialYamlKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token_ttl: 30\n"), 0o600))

	withArgs(t, "-config", path)

	cfg := LoadConfig()

	require.Equal(t, 30*time.Second, cfg.TokenTTL)
	require.Equal(t, "127.0.0.1:4000", cfg.EndpointAddr)
}
