// Package bookmark reads and writes the saved reading offset for a source.
package bookmark

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDir    = "brisk"
	ext       = ".yaml"
	stdinName = "stdin"
)

// Bookmark stores an absolute token offset.
type Bookmark struct {
	Counter int `yaml:"counter"`
}

// Save writes b to path. The parent directory must already exist.
func Save(path string, b Bookmark) error {
	data, err := yaml.Marshal(&b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a bookmark from path. A file without a counter field is malformed.
func Load(path string) (Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bookmark{}, err
	}

	var raw struct {
		Counter *int `yaml:"counter"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Bookmark{}, fmt.Errorf("malformed bookmark: %w", err)
	}
	if raw.Counter == nil {
		return Bookmark{}, errors.New("malformed bookmark: missing counter")
	}
	return Bookmark{Counter: *raw.Counter}, nil
}

// StateDir returns XDG_STATE_HOME/brisk or ~/.local/state/brisk.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appDir)
}

// DefaultPath derives the bookmark file for source inside dir. An empty source
// means standard input. The name keeps the source base name for readability and
// adds a short hash of the absolute path so equal base names do not collide.
func DefaultPath(dir, source string) string {
	if source == "" {
		return filepath.Join(dir, stdinName+ext)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	sum := sha256.Sum256([]byte(abs))
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+"-"+hex.EncodeToString(sum[:4])+ext)
}
