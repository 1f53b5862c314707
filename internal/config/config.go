// ABOUTME: Configuration for notebook storage, servers, and logging.
// ABOUTME: Merges defaults, an XDG YAML file, .env, and NOTEBOOK_* environment variables.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"

	EncodingJSON = "json"
	EncodingCBOR = "cbor"

	DefaultHTTPAddr = "127.0.0.1:8080"
)

// Config holds notebook settings.
type Config struct {
	// DataDir is where the badger database lives.
	DataDir string `yaml:"data_dir"`

	// Backend selects the key-value medium: badger, charm, or memory.
	Backend string `yaml:"backend"`

	// Encoding selects the stored collection format: json or cbor.
	Encoding string `yaml:"encoding"`

	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	// CharmHost is the charm server used by the charm backend.
	CharmHost string `yaml:"charm_host,omitempty"`

	// AutoSync syncs the charm backend after each write.
	AutoSync bool `yaml:"auto_sync"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir(),
		Backend:  BackendBadger,
		Encoding: EncodingJSON,
		HTTPAddr: DefaultHTTPAddr,
		LogLevel: "warn",
		AutoSync: true,
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/notebook.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notebook")
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notebook")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load builds the effective configuration. Environment variables already set
// take precedence over .env values, and both override the YAML file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file over the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Config path comes from XDG rules
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("NOTEBOOK_DATA_DIR", &c.DataDir)
	setString("NOTEBOOK_BACKEND", &c.Backend)
	setString("NOTEBOOK_ENCODING", &c.Encoding)
	setString("NOTEBOOK_HTTP_ADDR", &c.HTTPAddr)
	setString("NOTEBOOK_LOG_LEVEL", &c.LogLevel)
	setString("NOTEBOOK_CHARM_HOST", &c.CharmHost)

	if v := strings.TrimSpace(os.Getenv("NOTEBOOK_AUTO_SYNC")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTEBOOK_AUTO_SYNC must be a boolean: %w", err)
		}
		c.AutoSync = b
	}
	return nil
}

// Validate rejects unknown backend and encoding names.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	c.Encoding = strings.ToLower(c.Encoding)

	switch c.Backend {
	case BackendBadger, BackendCharm, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want badger, charm, or memory)", c.Backend)
	}
	switch c.Encoding {
	case EncodingJSON, EncodingCBOR:
	default:
		return fmt.Errorf("unknown encoding %q (want json or cbor)", c.Encoding)
	}
	if c.Backend == BackendBadger && c.DataDir == "" {
		return fmt.Errorf("data directory is required for the badger backend")
	}
	return nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
