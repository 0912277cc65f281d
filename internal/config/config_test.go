package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ERM_DIAGRAM", "ERM_LOG_LEVEL",
		"PGHOST", "POSTGRES_HOST", "PGPORT", "POSTGRES_PORT",
		"PGDATABASE", "POSTGRES_DB", "PGUSER", "POSTGRES_USER",
		"PGPASSWORD", "POSTGRES_PASSWORD", "PGSSLMODE",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "erm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
diagram: model.json
log_level: debug
format: mermaid
output: out.txt
connection:
  host: db.local
  database: app
  user: reader
schemas: [public, audit]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "model.json", cfg.Diagram)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, FormatMermaid, cfg.Format)
	assert.Equal(t, "out.txt", cfg.Output)
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.Equal(t, "disable", cfg.Connection.SSLMode)
	assert.Equal(t, []string{"public", "audit"}, cfg.Schemas)
	assert.NoError(t, cfg.ValidateForIntrospect())
	assert.Equal(t, "host=db.local port=5432 dbname=app user=reader password= sslmode=disable", cfg.Connection.DSN())
}

func TestLoadEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERM_DIAGRAM", "env.yaml")
	t.Setenv("PGHOST", "env-host")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "envdb")
	t.Setenv("PGUSER", "envuser")

	cfg, err := Load(writeConfig(t, "connection:\n  host: file-host\n"))
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.Diagram)
	assert.Equal(t, "file-host", cfg.Connection.Host)
	assert.Equal(t, 6543, cfg.Connection.Port)
	assert.Equal(t, "envdb", cfg.Connection.Database)
	assert.Equal(t, "envuser", cfg.Connection.User)
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERM_LOG_LEVEL", "warn")

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, []string{"public"}, cfg.Schemas)
	assert.EqualError(t, cfg.ValidateForIntrospect(), "connection.host is required")
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "schemas: {"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(writeConfig(t, "format: svg\n"))
	assert.ErrorContains(t, err, "format must be")

	_, err = Load(writeConfig(t, "log_level: loud\n"))
	assert.ErrorContains(t, err, "log_level")
}

func TestValidateForIntrospect(t *testing.T) {
	cfg := &Config{Connection: Connection{Host: "h"}}
	assert.EqualError(t, cfg.ValidateForIntrospect(), "connection.database is required")
	cfg.Connection.Database = "d"
	assert.EqualError(t, cfg.ValidateForIntrospect(), "connection.user is required")
}
