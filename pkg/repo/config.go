package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config stores repository-local inspection settings:
//
//	[walk]
//	on-missing-object = "fail"   # or "emit-path"
//
//	[log]
//	limit = 20
type Config struct {
	Walk WalkConfig `toml:"walk"`
	Log  LogConfig  `toml:"log"`
}

// WalkConfig controls tree walking.
type WalkConfig struct {
	OnMissingObject string `toml:"on-missing-object"`
}

// LogConfig controls history output.
type LogConfig struct {
	Limit int `toml:"limit"`
}

func (r *Repo) configPath() string {
	return filepath.Join(r.RootDir, ".relic.toml")
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Walk: WalkConfig{OnMissingObject: string(MissingObjectFail)},
		Log:  LogConfig{Limit: 20},
	}
}

// ReadConfig reads .relic.toml from the repository root. A missing file
// returns the defaults; fields absent from the file keep their defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := cfg.MissingPolicy(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Log.Limit <= 0 {
		return nil, fmt.Errorf("read config: log.limit must be positive, got %d", cfg.Log.Limit)
	}
	return cfg, nil
}

// MissingPolicy validates and returns the configured walker policy.
func (c *Config) MissingPolicy() (MissingObjectPolicy, error) {
	return ParseMissingPolicy(c.Walk.OnMissingObject)
}
