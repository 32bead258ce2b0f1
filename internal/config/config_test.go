package config

import (
	"log/slog"
	"os"
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SCENE_ADDR", "SCENE_DB_PATH", "SCENE_ALLOWED_ORIGINS", "SCENE_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.DBPath != "data/scenes.db" {
		t.Errorf("Load() = %+v", cfg)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"localhost:5173", "localhost:3000"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if l, _ := cfg.Level(); l != slog.LevelInfo {
		t.Errorf("Level() = %v, want INFO", l)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SCENE_ADDR", "127.0.0.1:9000")
	t.Setenv("SCENE_DB_PATH", "/tmp/s.db")
	t.Setenv("SCENE_ALLOWED_ORIGINS", "example.com,*.example.org")
	t.Setenv("SCENE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.DBPath != "/tmp/s.db" {
		t.Errorf("Load() = %+v", cfg)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"example.com", "*.example.org"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("Level() = %v, want DEBUG", l)
	}
}

func TestLoadBadLevel(t *testing.T) {
	t.Setenv("SCENE_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unknown log level")
	}
}
