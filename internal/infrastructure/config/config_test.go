package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxImageBytes)
	assert.Equal(t, "fixora:complaints:events", cfg.Complaint.EventChannel)
	assert.Same(t, cfg, Get())
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: /tmp/fixora-test.db
storage:
  bucket: complaints
`)
	t.Setenv("FIXORA_SERVER_PORT", "9191")
	t.Setenv("FIXORA_AUTH_JWT_ISSUER", "fixora-test")

	cfg, err := LoadFrom("test", dir)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 9191, cfg.Server.Port, "env wins over file")
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, "/tmp/fixora-test.db", cfg.Database.GetDSN())
	assert.Equal(t, "complaints", cfg.Storage.Bucket)
	assert.Equal(t, "fixora-test", cfg.Auth.JWT.Issuer)
}

func TestLoadFrom_RejectsUnsafeProduction(t *testing.T) {
	_, err := LoadFrom("production", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt.secret")

	t.Setenv("FIXORA_AUTH_JWT_SECRET", "a-real-secret")
	cfg, err := LoadFrom("production", t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFrom_RejectsUnknownValues(t *testing.T) {
	_, err := LoadFrom("staging", t.TempDir())
	assert.Error(t, err)

	dir := writeConfig(t, "database:\n  driver: postgres\n")
	_, err = LoadFrom("", dir)
	assert.Error(t, err)
}
