// Package config holds reader settings: built-in defaults, an optional TOML file,
// and the validation applied after command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

// Config is the reader configuration. Step is counted in tokens; zero means
// one chunk.
type Config struct {
	Speed          int    `toml:"speed"`
	Chunk          int    `toml:"chunk"`
	Step           int    `toml:"step"`
	SpeedIncrement int    `toml:"speed_increment"`
	BookmarkDir    string `toml:"bookmark_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Speed:          300,
		Chunk:          3,
		SpeedIncrement: 50,
	}
}

// Path returns XDG_CONFIG_HOME/brisk/config.toml or ~/.config/brisk/config.toml.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "brisk", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "brisk", fileName)
}

// Load reads path over the defaults. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

// EffectiveStep returns the navigation step in tokens.
func (c Config) EffectiveStep() int {
	if c.Step <= 0 {
		return c.Chunk
	}
	return c.Step
}

// Validate rejects values the reader cannot run with.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("invalid speed: %d (must be positive)", c.Speed)
	}
	if c.Chunk <= 0 {
		return fmt.Errorf("invalid chunk size: %d (must be positive)", c.Chunk)
	}
	if c.Step < 0 {
		return fmt.Errorf("invalid step: %d (must be positive)", c.Step)
	}
	if c.SpeedIncrement <= 0 {
		return fmt.Errorf("invalid speed_increment: %d (must be positive)", c.SpeedIncrement)
	}
	return nil
}
