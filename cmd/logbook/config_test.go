package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: /tmp/test-logbook.db\nbusy_timeout_ms: 250\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/test-logbook.db", cfg.DatabasePath)
	require.Equal(t, 250, cfg.BusyTimeoutMS)
}

func TestLoadConfigFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".logbook.yaml"),
		[]byte("database: /tmp/cwd-logbook.db\n"), 0o644))
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/cwd-logbook.db", cfg.DatabasePath)
}

func TestLoadConfigHomeDirectoryFallback(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".logbook"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".logbook", "config.yaml"),
		[]byte("database: /tmp/home-logbook.db\n"), 0o644))
	chdir(t, t.TempDir())
	t.Setenv("HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/home-logbook.db", cfg.DatabasePath)
}

func TestLoadConfigNoFileFallsBackToEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOGBOOK_DATABASE", "/tmp/env-only-logbook.db")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/env-only-logbook.db", cfg.DatabasePath)
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	t.Setenv("LOGBOOK_DATABASE", "/tmp/env-logbook.db")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/env-logbook.db", cfg.DatabasePath)
	require.Equal(t, types.DefaultBusyTimeoutMS, cfg.BusyTimeoutMS)
}

func TestLoadConfigMissingDatabaseIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("busy_timeout_ms: 100\n"), 0o644))

	_, err := loadConfig(path)
	require.ErrorIs(t, err, types.ErrDatabasePathEmpty)
	require.ErrorContains(t, err, "LOGBOOK_DATABASE")
}
