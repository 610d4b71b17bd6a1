package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDSTONE_DATA_DIR", "")
	t.Setenv("REDSTONE_SLOTS_BACKEND", "")
	t.Setenv("REDSTONE_PROGRESS_STEPS", "")
	t.Setenv("REDSTONE_PROGRESS_INTERVAL", "")
	os.Unsetenv("REDSTONE_DATA_DIR")
	os.Unsetenv("REDSTONE_SLOTS_BACKEND")
	os.Unsetenv("REDSTONE_PROGRESS_STEPS")
	os.Unsetenv("REDSTONE_PROGRESS_INTERVAL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SlotsBackend != BackendText {
		t.Errorf("expected text backend, got %q", cfg.SlotsBackend)
	}
	if cfg.ProgressSteps != 10 || cfg.ProgressInterval != 100*time.Millisecond {
		t.Errorf("unexpected progress defaults %d %s", cfg.ProgressSteps, cfg.ProgressInterval)
	}
	if cfg.DataDir == "" {
		t.Error("expected a default data dir")
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REDSTONE_DATA_DIR", dir)
	t.Setenv("REDSTONE_SLOTS_BACKEND", "sqlite")
	t.Setenv("REDSTONE_PROGRESS_INTERVAL", "5ms")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SlotsBackend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.SlotsBackend)
	}
	if cfg.ProgressInterval != 5*time.Millisecond {
		t.Errorf("expected 5ms, got %s", cfg.ProgressInterval)
	}
	if cfg.SlotsPath() != filepath.Join(dir, "saved_data") {
		t.Errorf("unexpected slots path %q", cfg.SlotsPath())
	}
	if cfg.SettingsPath() != filepath.Join(dir, "set.txt") {
		t.Errorf("unexpected settings path %q", cfg.SettingsPath())
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	os.WriteFile(envFile, []byte("REDSTONE_PROGRESS_STEPS=3\n"), 0o644)
	t.Setenv("REDSTONE_DATA_DIR", dir)
	t.Setenv("REDSTONE_PROGRESS_STEPS", "")
	os.Unsetenv("REDSTONE_PROGRESS_STEPS")
	t.Cleanup(func() { os.Unsetenv("REDSTONE_PROGRESS_STEPS") })

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProgressSteps != 3 {
		t.Errorf("expected 3 steps from .env, got %d", cfg.ProgressSteps)
	}
}

func TestMissingEnvFileIsFine(t *testing.T) {
	t.Setenv("REDSTONE_DATA_DIR", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	bad := Config{SlotsBackend: "redis"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
	neg := Config{SlotsBackend: BackendText, ProgressSteps: -1}
	if err := neg.Validate(); err == nil {
		t.Error("expected error for negative steps")
	}
}
