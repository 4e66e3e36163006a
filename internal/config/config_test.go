package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/projfix/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.History.Path)
	require.Empty(t, cfg.Policy.ExemptUIDs)
	require.Equal(t, 8, cfg.Policy.DefaultTaskHours)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `log:
  level: debug
history:
  path: /tmp/projfix.db
policy:
  exempt_uids: ["12", "47"]
  default_task_hours: 6
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/tmp/projfix.db", cfg.History.Path)
	require.Equal(t, []string{"12", "47"}, cfg.Policy.ExemptUIDs)
	require.Equal(t, 6, cfg.Policy.DefaultTaskHours)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	t.Setenv("PROJFIX_LOG_LEVEL", "error")
	t.Setenv("PROJFIX_HISTORY_PATH", "/var/lib/projfix/history.db")
	t.Setenv("PROJFIX_EXEMPT_UIDS", "3, 9,")
	t.Setenv("PROJFIX_DEFAULT_TASK_HOURS", "10")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, "/var/lib/projfix/history.db", cfg.History.Path)
	require.Equal(t, []string{"3", "9"}, cfg.Policy.ExemptUIDs)
	require.Equal(t, 10, cfg.Policy.DefaultTaskHours)
}

func TestLoadRejectsBadHours(t *testing.T) {
	t.Setenv("PROJFIX_DEFAULT_TASK_HOURS", "a lot")
	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
