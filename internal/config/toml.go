// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game   GameConfig   `toml:"game"`
	Canvas CanvasConfig `toml:"canvas"`
}

// GameConfig maps scoring-related settings.
type GameConfig struct {
	Mode      *string  `toml:"mode"`
	MinRadius *float64 `toml:"min-radius"`
	Closure   *float64 `toml:"closure"`
	DotRadius *float64 `toml:"dot-radius"`
	Sound     *bool    `toml:"sound"`
}

// CanvasConfig maps the logical canvas size.
type CanvasConfig struct {
	Width  *float64 `toml:"width"`
	Height *float64 `toml:"height"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
