package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Speed != 300 || cfg.Chunk != 3 || cfg.SpeedIncrement != 50 {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.EffectiveStep() != 3 {
		t.Errorf("EffectiveStep() = %d, want chunk size", cfg.EffectiveStep())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `speed = 450
step = 6
bookmark_dir = "/tmp/marks"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Speed != 450 || cfg.Step != 6 || cfg.BookmarkDir != "/tmp/marks" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Chunk != 3 {
		t.Errorf("unset chunk should keep default, got %d", cfg.Chunk)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("optional missing file should not fail: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	if _, err := Load(path, true); err == nil {
		t.Error("required missing file should fail")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("speed = \"fast\"\n"), 0644)
	if _, err := Load(path, false); err == nil {
		t.Error("expected decode error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero speed", func(c *Config) { c.Speed = 0 }, true},
		{"negative chunk", func(c *Config) { c.Chunk = -1 }, true},
		{"negative step", func(c *Config) { c.Step = -2 }, true},
		{"zero increment", func(c *Config) { c.SpeedIncrement = 0 }, true},
		{"explicit step", func(c *Config) { c.Step = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if got := Path(); got != filepath.Join("/tmp/cfg", "brisk", "config.toml") {
		t.Errorf("Path() = %q", got)
	}
}
