package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "iwacu"
storage:
  bookings_file: "data/bookings.csv"
telegram:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "iwacu" {
		t.Errorf("expected app name iwacu, got %s", cfg.App.Name)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Data.MenuFile != "menu.csv" {
		t.Errorf("expected default menu file, got %s", cfg.Data.MenuFile)
	}
	if cfg.Storage.InvitesDir != "ics_files" {
		t.Errorf("expected default invites dir, got %s", cfg.Storage.InvitesDir)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("IWACU_BOOKINGS", "custom/bookings.csv")

	yamlContent := `
storage:
  bookings_file: "${IWACU_BOOKINGS}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.BookingsFile != "custom/bookings.csv" {
		t.Errorf("env expansion failed, got %s", cfg.Storage.BookingsFile)
	}
}

func TestValidateMissingBookingsFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("app:\n  name: test\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected validation error for missing bookings file")
	}
}

func TestValidateTelegramToken(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
storage:
  bookings_file: "data/bookings.csv"
telegram:
  enabled: true
  bot_token: ""
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected validation error for missing telegram token")
	}
}
