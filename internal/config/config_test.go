package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	withEnv(t, "LEXHOURS_DEV_MODE", "true")
	withEnv(t, "LEXHOURS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5001 {
		t.Errorf("Port = %d, want 5001", cfg.Server.Port)
	}
	if cfg.Assist.Model != "hunyuan-lite" {
		t.Errorf("Model = %q", cfg.Assist.Model)
	}
	if time.Duration(cfg.Assist.Timeout) != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", time.Duration(cfg.Assist.Timeout))
	}
	if cfg.Backup.Keep != 14 {
		t.Errorf("Backup.Keep = %d, want 14", cfg.Backup.Keep)
	}
	if cfg.Assist.Configured() {
		t.Error("assist should be unconfigured without an API key")
	}
}

func TestLoadFromFile_YAMLAndEnvPrecedence(t *testing.T) {
	withEnv(t, "LEXHOURS_DEV_MODE", "true")
	withEnv(t, "LEXHOURS_PORT", "9999")
	withEnv(t, "HUNYUAN_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "lexhours.yaml")
	yaml := `
server:
  port: 8081
  read_timeout: 10s
assist:
  model: hunyuan-turbo
  timeout: 5s
backup:
  schedule: "30 1 * * *"
  keep: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	// Env beats YAML.
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
	// YAML beats defaults.
	if cfg.Assist.Model != "hunyuan-turbo" {
		t.Errorf("Model = %q, want hunyuan-turbo", cfg.Assist.Model)
	}
	if time.Duration(cfg.Assist.Timeout) != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", time.Duration(cfg.Assist.Timeout))
	}
	if cfg.Backup.Schedule != "30 1 * * *" {
		t.Errorf("Schedule = %q", cfg.Backup.Schedule)
	}
	if !cfg.Assist.Configured() {
		t.Error("assist should be configured via HUNYUAN_API_KEY")
	}
}

func TestLoad_RequiresJWTSecretOutsideDevMode(t *testing.T) {
	withEnv(t, "LEXHOURS_DEV_MODE", "")
	withEnv(t, "LEXHOURS_JWT_SECRET", "")
	withEnv(t, "LEXHOURS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without LEXHOURS_JWT_SECRET")
	}
}
