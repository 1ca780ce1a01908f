package watcher

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config drives the folder watcher.
type Config struct {
	Dir             string `koanf:"dir"`
	ServerURL       string `koanf:"server_url"`
	Pattern         string `koanf:"pattern"`
	QuietSeconds    int    `koanf:"quiet_seconds"`
	IntervalSeconds int    `koanf:"interval_seconds"`
	DeleteUploaded  bool   `koanf:"delete_uploaded"`
}

// DefaultConfig mirrors the game client's log behavior: board files appear
// under the game directory and keep growing while the client has the board
// open, so a file is only picked up after five quiet minutes.
func DefaultConfig() Config {
	return Config{
		Pattern:         "FactionBoard*",
		QuietSeconds:    300,
		IntervalSeconds: 60,
		DeleteUploaded:  true,
	}
}

// LoadConfig layers defaults, an optional YAML file, and BOARD_WATCH_*
// environment variables (low to high precedence).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("BOARD_WATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "board_watch_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Dir == "" {
		return nil, errors.New("dir must not be empty")
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("server_url must not be empty")
	}
	return &cfg, nil
}
