package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// DBPath overrides the default ~/.retroquest.db location when set.
	DBPath string      `toml:"db_path"`
	Guard  GuardConfig `toml:"guard"`
	Log    LogConfig   `toml:"log"`
}

type GuardConfig struct {
	// CooldownMS is the debounce window for complete/buy actions.
	CooldownMS int `toml:"cooldown_ms"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"` // "text" or "json"
	AddSource bool       `toml:"add_source"`
}

func Default() Config {
	return Config{
		Guard: GuardConfig{CooldownMS: 500},
		Log:   LogConfig{Level: slog.LevelInfo, Format: "text"},
	}
}

// DefaultPath returns the default config location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".retroquest.toml"), nil
}

// Load reads the TOML config at path. A missing file is not an error: the
// defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Guard.CooldownMS <= 0 {
		cfg.Guard.CooldownMS = Default().Guard.CooldownMS
	}
	return cfg, nil
}
