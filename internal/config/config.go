// ABOUTME: Fitnotes configuration loaded from a JSON file and FITNOTES_ environment variables.
// ABOUTME: Resolves the data directory and the database, side store and log paths under it.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitnotes/internal/storage"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FITNOTES"

	keyDataDir  = "data_dir"
	keyDBPath   = "db_path"
	keyDebug    = "debug"
	keySeedDemo = "seed_demo"
)

// Config stores fitnotes configuration.
type Config struct {
	// DataDir is the root directory for data storage. The database, the
	// kv/ side store and logs/ live here. Supports ~ expansion. Defaults to
	// ~/.local/share/fitnotes.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// DBPath overrides the database location inside DataDir.
	DBPath string `json:"db_path,omitempty" mapstructure:"db_path"`

	Debug bool `json:"debug,omitempty" mapstructure:"debug"`

	// SeedDemo controls first-run demo data. Defaults to true.
	SeedDemo bool `json:"seed_demo" mapstructure:"seed_demo"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the SQLite database path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(c.GetDataDir(), "fitnotes.db")
}

// KVDir returns the directory of the badger side store.
func (c *Config) KVDir() string {
	return filepath.Join(c.GetDataDir(), "kv")
}

// LogDir returns the directory for rotated log files.
func (c *Config) LogDir() string {
	return filepath.Join(c.GetDataDir(), "logs")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitnotes", "config.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyDataDir, "")
	v.SetDefault(keyDBPath, "")
	v.SetDefault(keyDebug, false)
	v.SetDefault(keySeedDemo, true)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads config from disk and the environment. A missing config file
// yields the defaults.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigFile(GetConfigPath())
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// OpenStorage opens the SQLite database at GetDBPath.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.GetDBPath())
}
