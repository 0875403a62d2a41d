package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds settings for the todo server binary.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string `mapstructure:"addr" yaml:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// RequestTimeoutSec bounds how long a single request may run.
	RequestTimeoutSec int `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
}

// ClientConfig holds settings for the terminal client binary.
type ClientConfig struct {
	// BaseURL is the root URL of the todo server.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single API call.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Config is the top-level application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Client ClientConfig `mapstructure:"client" yaml:"client"`
}

// DefaultPath returns the default configuration file location at
// ~/.config/todoist/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todoist", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":3000",
			DBPath:            "todoist.db",
			RequestTimeoutSec: 10,
		},
		Client: ClientConfig{
			BaseURL:    "http://localhost:3000",
			TimeoutSec: 15,
		},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.db_path", "todoist.db")
	v.SetDefault("server.request_timeout_sec", 10)
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.timeout_sec", 15)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
