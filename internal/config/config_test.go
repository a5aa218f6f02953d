package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return Load(fs, args)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != DefaultStore {
		t.Errorf("Store = %q, want %q", cfg.Store, DefaultStore)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("log defaults = %s/%s, want %s/%s", cfg.LogLevel, cfg.LogFormat, DefaultLogLevel, DefaultLogFormat)
	}
	if filepath.Base(cfg.DataFile) != DefaultDataFileName {
		t.Errorf("DataFile = %q, want a %s", cfg.DataFile, DefaultDataFileName)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_file = "/tmp/custom.json"
store = "sqlite"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(t, "-config", path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataFile != "/tmp/custom.json" {
		t.Errorf("DataFile = %q, want /tmp/custom.json", cfg.DataFile)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Store = %q, want sqlite", cfg.Store)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestMissingExplicitConfigFileErrors(t *testing.T) {
	if _, err := load(t, "-config", filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("an explicitly named missing config file should error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`store = "json"`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RUTINA_STORE", "sqlite")

	cfg, err := load(t, "-config", path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Store = %q, env should override file", cfg.Store)
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("RUTINA_LOG_LEVEL", "error")
	cfg, err := load(t, "-log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, flag should override env", cfg.LogLevel)
	}
}

func TestUnknownStoreRejected(t *testing.T) {
	if _, err := load(t, "-store", "redis"); err == nil {
		t.Error("unknown store backend should be rejected")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Store = "sqlite"
	if err := cfg.Write(path); err != nil {
		t.Fatal(err)
	}

	got, err := load(t, "-config", path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Store != "sqlite" {
		t.Errorf("Store = %q after round trip, want sqlite", got.Store)
	}
}
