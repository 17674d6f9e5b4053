package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOLLOWUP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 5 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.API.ModeratorRoleID != 1 {
		t.Errorf("moderator role id = %d", cfg.API.ModeratorRoleID)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.UI.DateFormat != "02/01/2006" {
		t.Errorf("date format = %q", cfg.UI.DateFormat)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://followup.example.org/api"
timeout_seconds = 30

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLLOWUP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://followup.example.org/api" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	// untouched keys keep their defaults
	if cfg.UI.DateFormat != "02/01/2006" {
		t.Errorf("date format = %q", cfg.UI.DateFormat)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FOLLOWUP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("FOLLOWUP_API_BASE_URL", "https://env.example.org/api")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://env.example.org/api" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
}
