// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultStore        = "json"
	DefaultDataFileName = "rutina.json"
	DefaultDBFileName   = "rutina.db"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"

	// ProjectConfigName is looked up in the working directory and takes
	// precedence over the user config file.
	ProjectConfigName = "rutina.toml"
)

// Config holds the full configuration for rutina.
type Config struct {
	// DataFile is the JSON data file path (store = "json").
	DataFile string `toml:"data_file"`
	// Store selects the persistence backend: "json" or "sqlite".
	Store string `toml:"store"`
	// DBFile is the sqlite database path (store = "sqlite").
	DBFile string `toml:"db_file"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// Default returns the built-in configuration, with data files under the
// user config directory.
func Default() *Config {
	dir := dataDir()
	return &Config{
		DataFile:  filepath.Join(dir, DefaultDataFileName),
		Store:     DefaultStore,
		DBFile:    filepath.Join(dir, DefaultDBFileName),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

func dataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "rutina")
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() string {
	return filepath.Join(dataDir(), "config.toml")
}

// Load resolves the configuration with precedence defaults < user file <
// project file < environment < flags. It registers its flags on fs and
// parses args; remaining arguments are available via fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	configPath := fs.String("config", "", "Path to a config file (overrides the default lookup)")
	dataFile := fs.String("data", "", "Path to the JSON data file")
	storeKind := fs.String("store", "", `Persistence backend: "json" or "sqlite"`)
	dbFile := fs.String("db", "", "Path to the sqlite database file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: text, json, logfmt")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configPath != "" {
		if err := applyFile(cfg, *configPath, true); err != nil {
			return nil, err
		}
	} else {
		if err := applyFile(cfg, UserConfigPath(), false); err != nil {
			return nil, err
		}
		if err := applyFile(cfg, ProjectConfigName, false); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if required {
			return fmt.Errorf("config file not found: %s", path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set("RUTINA_DATA_FILE", &cfg.DataFile)
	set("RUTINA_STORE", &cfg.Store)
	set("RUTINA_DB_FILE", &cfg.DBFile)
	set("RUTINA_LOG_LEVEL", &cfg.LogLevel)
	set("RUTINA_LOG_FORMAT", &cfg.LogFormat)
}

func (c *Config) validate() error {
	switch c.Store {
	case "json", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown store %q (want json or sqlite)", c.Store)
	}
}

// Write saves the configuration to path in TOML.
func (c *Config) Write(path string) error {
	buf, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}
