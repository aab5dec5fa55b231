package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vvka-141/credload/pkg/credload"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory when --config is not given.
const ConfigFileName = "credload.yaml"

// Environment variables consulted between flags and credload.yaml.
const (
	EnvStore         = "CREDLOAD_STORE"
	EnvDatabaseURL   = "CREDLOAD_DATABASE_URL"
	EnvDatabaseURLPG = "DATABASE_URL"
	EnvRedisAddr     = "CREDLOAD_REDIS_ADDR"
	EnvRedisPassword = "CREDLOAD_REDIS_PASSWORD"
)

type PostgresConfig struct {
	DSN        string `yaml:"dsn"`
	Table      string `yaml:"table,omitempty"`
	SkipSchema bool   `yaml:"skip_schema,omitempty"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

type Config struct {
	Store    string         `yaml:"store"`
	Timeout  string         `yaml:"timeout,omitempty"`
	Strict   bool           `yaml:"strict,omitempty"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", credload.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the values that can be checked without connecting.
func (c *Config) Validate() error {
	switch c.Store {
	case "", credload.StoreMemory, credload.StorePostgres, credload.StoreRedis:
	default:
		return fmt.Errorf("%w: unknown store %q", credload.ErrInvalidConfig, c.Store)
	}
	if _, err := c.TimeoutOr(0); err != nil {
		return err
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db must not be negative", credload.ErrInvalidConfig)
	}
	return nil
}

// TimeoutOr parses Timeout, returning fallback when it is unset.
func (c *Config) TimeoutOr(fallback time.Duration) (time.Duration, error) {
	if c.Timeout == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q: %w", credload.ErrInvalidConfig, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", credload.ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}
