package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the optional config file consulted by LoadConfig.
const ConfigFileName = "pgmodel.yaml"

// Config holds connection settings for the Postgres pool.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
	MaxConns int    `koanf:"max_conns"`
}

// LoadConfig layers configuration from three sources, lowest priority
// first: built-in defaults, pgmodel.yaml in the working directory (when
// present), and POSTGRES_* environment variables (POSTGRES_DB maps to
// database; POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER,
// POSTGRES_PASSWORD, POSTGRES_SSLMODE, POSTGRES_MAX_CONNS map by name).
func LoadConfig() (Config, error) {
	return LoadConfigFile(ConfigFileName)
}

// LoadConfigFile is LoadConfig with an explicit config file path. An
// empty path or a missing file skips the file layer.
func LoadConfigFile(path string) (Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"host":      "localhost",
		"port":      5432,
		"sslmode":   "disable",
		"max_conns": 4,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("POSTGRES_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "POSTGRES_"))
		if s == "db" {
			return "database"
		}
		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// dsn renders the key=value connection string the pgx driver expects.
func (c Config) dsn() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, c.Database, sslmode)
	if c.User != "" {
		dsn += fmt.Sprintf(" user=%s", c.User)
	}
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}
