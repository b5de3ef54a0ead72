// Package config loads the component configuration from a TOML file with
// environment overrides. A .env file in the working directory, if present,
// is folded into the environment first so local development and CI can share
// the same override names.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

type DatabaseConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Name         string `toml:"name"`
	SSLMode      string `toml:"sslmode"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "catalogsrv",
			Name:         "catalogsrv",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path, then applies CATALOG_DB_* environment
// overrides. An empty path skips the file and yields defaults plus
// overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CATALOG_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("CATALOG_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Database.Port = p
		}
	}
	if v := os.Getenv("CATALOG_DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("CATALOG_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("CATALOG_DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("CATALOG_DB_SSLMODE"); v != "" {
		c.Database.SSLMode = v
	}
	if v := os.Getenv("CATALOG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// DSN renders the connection string consumed by the pgx stdlib driver.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// ConfigureLogging applies the configured level to the global zerolog
// setting. Unknown levels fall back to info.
func (c *Config) ConfigureLogging() {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
