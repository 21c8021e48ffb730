package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 500, cfg.Guard.CooldownMS)
	require.Equal(t, slog.LevelInfo, cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retroquest.toml")
	body := `
db_path = "/tmp/rq-test.db"

[guard]
cooldown_ms = 750

[log]
level = -4
format = "json"
add_source = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/rq-test.db", cfg.DBPath)
	require.Equal(t, 750, cfg.Guard.CooldownMS)
	require.Equal(t, slog.LevelDebug, cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Log.AddSource)
}

func TestLoadClampsNonPositiveCooldown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retroquest.toml")
	require.NoError(t, os.WriteFile(path, []byte("[guard]\ncooldown_ms = 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 500, cfg.Guard.CooldownMS)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retroquest.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
