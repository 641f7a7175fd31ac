package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"DROPIN_PORT", "DROPIN_DB_PATH", "DROPIN_REDIS_ADDR", "DROPIN_REDIS_PASSWORD",
	"DROPIN_REMOTE_DSN", "DROPIN_OCR_API_KEY", "DROPIN_OCR_ENDPOINT", "LOG_LEVEL",
}

// clearEnv unsets every variable Load reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Session.Courts != 3 || cfg.Storage.Backend != BackendSQLite {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.OCREnabled() {
		t.Error("OCR should be disabled without an API key")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", `
server:
  port: 9090
  shutdown_timeout: 3s
session:
  courts: 5
storage:
  path: /tmp/x.db
`)
	writeFile(t, dir, ".env", "DROPIN_OCR_API_KEY=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("DROPIN_OCR_API_KEY") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Session.Courts != 5 {
		t.Errorf("courts = %d", cfg.Session.Courts)
	}
	if cfg.Storage.Path != "/tmp/x.db" {
		t.Errorf("path = %q", cfg.Storage.Path)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.OCR.APIKey != "from-dotenv" {
		t.Errorf("api key = %q", cfg.OCR.APIKey)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DROPIN_PORT", "7000")
	t.Setenv("DROPIN_REDIS_ADDR", "cache:6379")
	t.Setenv("DROPIN_REMOTE_DSN", "postgres://u@h/db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.Redis.Addr != "cache:6379" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Storage.RemoteDSN == "" {
		t.Error("remote DSN not read")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{"bad port env", "", map[string]string{"DROPIN_PORT": "eighty"}, "DROPIN_PORT"},
		{"zero courts", "session:\n  courts: 0\n", nil, "courts"},
		{"unknown backend", "storage:\n  backend: mongo\n", nil, "unsupported storage backend"},
		{"bad level", "log:\n  level: loud\n", nil, "log level"},
		{"malformed yaml", "server: [", nil, "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			path := writeFile(t, dir, "app.yaml", tt.yaml)

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}
