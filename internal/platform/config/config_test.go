package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "quotedesk", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "X-User-ID", cfg.Auth.SubjectHeader)
	assert.Equal(t, DefaultUser, cfg.Auth.DefaultUser)
	assert.Equal(t, "https://viacep.com.br", cfg.Services.Address.BaseURL)
	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
	assert.Equal(t, "saas", cfg.Storage.NamespacePrefix)
	assert.Equal(t, DefaultAccessCodes, cfg.Access.Codes)
	assert.Equal(t, DefaultAccessValidityDays, cfg.Access.ValidityDays)
	assert.Equal(t, 10*time.Minute, cfg.CORS.MaxAge)

	require.NoError(t, cfg.Validate())
}

func TestLoad_ProfileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "configs", "base.yaml"), `
log:
  level: debug
storage:
  driver: sqlite
  path: ./data/base.db
`)
	writeFile(t, filepath.Join(dir, "configs", "test.yaml"), `
storage:
  path: ./data/test.db
access:
  codes: [ONLY1]
  validity_days: 7
`)

	cfg, err := LoadFromDir(dir, "test")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "./data/test.db", cfg.Storage.Path)
	assert.Equal(t, []string{"ONLY1"}, cfg.Access.Codes)
	assert.Equal(t, 7, cfg.Access.ValidityDays)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG__LEVEL", "warn")
	t.Setenv("APP_STORAGE__NAMESPACE_PREFIX", "tenant")
	t.Setenv("APP_TELEMETRY__ENABLED", "true")

	cfg, err := LoadFromDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "tenant", cfg.Storage.NamespacePrefix)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "APP_STORAGE__DRIVER=memory\n")

	t.Cleanup(func() { _ = os.Unsetenv("APP_STORAGE__DRIVER") })

	cfg, err := LoadFromDir(dir, "")
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "APP_LOG__FORMAT=text\n")
	t.Setenv("APP_LOG__FORMAT", "pretty")

	cfg, err := LoadFromDir(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "pretty", cfg.Log.Format)
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quotedesk", cfg.App.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "configs", "base.yaml"), "server: [unclosed\n")

	_, err := LoadFromDir(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("APP_SERVER__PORT"))
	assert.Equal(t, "storage.dynamodb.endpoint", envKey("APP_STORAGE__DYNAMODB__ENDPOINT"))
	assert.Equal(t, "client.circuit_breaker.max_failures", envKey("APP_CLIENT__CIRCUIT_BREAKER__MAX_FAILURES"))
}
