package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/credload/internal/config"
	"github.com/vvka-141/credload/internal/record"
	"github.com/vvka-141/credload/internal/store"
	"github.com/vvka-141/credload/pkg/credload"
)

// storeFlagValues holds the flags of the load command.
type storeFlagValues struct {
	configPath string
	strict     bool
	timeout    time.Duration

	store      string
	dsn        string
	table      string
	skipSchema bool
	redisAddr  string
	redisDB    int
	redisKey   string
}

// dotEnvFile is read from the working directory before any other configuration.
const dotEnvFile = ".env"

// loadOptions is the fully resolved configuration of one load.
type loadOptions struct {
	store   store.Config
	policy  record.Policy
	timeout time.Duration
}

// loadProjectConfig loads .env and credload.yaml.
// A missing .env or credload.yaml in the working directory is not an error;
// an unreadable or malformed one is, as is a missing file named with --config.
func loadProjectConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", credload.ErrInvalidConfig, dotEnvFile, err)
	}

	explicit := path != ""
	if !explicit {
		path = config.ConfigFileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicit {
				return nil, fmt.Errorf("%w: %s: %w", credload.ErrInvalidConfig, path, err)
			}
			return &config.Config{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// resolvePolicy applies --strict over credload.yaml.
func resolvePolicy(cmd *cobra.Command, strict bool, cfg *config.Config) record.Policy {
	if !cmd.Flags().Changed("strict") {
		strict = cfg.Strict
	}
	if strict {
		return record.StrictPolicy()
	}
	return record.Policy{}
}

// resolveLoadOptions merges flags, environment and credload.yaml.
// Precedence: flag > environment variable > credload.yaml > default.
func resolveLoadOptions(cmd *cobra.Command, flags storeFlagValues, cfg *config.Config, getenv func(string) string) (loadOptions, error) {
	changed := cmd.Flags().Changed

	opts := loadOptions{policy: resolvePolicy(cmd, flags.strict, cfg)}

	opts.store.Backend = firstNonEmpty(flagValue(changed("store"), flags.store), getenv(config.EnvStore), cfg.Store, credload.StoreMemory)

	opts.store.Postgres = store.PostgresConfig{
		DSN:        firstNonEmpty(flags.dsn, getenv(config.EnvDatabaseURL), getenv(config.EnvDatabaseURLPG), cfg.Postgres.DSN),
		Table:      firstNonEmpty(flags.table, cfg.Postgres.Table, credload.DefaultPostgresTable),
		SkipSchema: cfg.Postgres.SkipSchema,
	}
	if changed("skip-schema") {
		opts.store.Postgres.SkipSchema = flags.skipSchema
	}

	opts.store.Redis = store.RedisConfig{
		Addr:     firstNonEmpty(flags.redisAddr, getenv(config.EnvRedisAddr), cfg.Redis.Addr),
		Password: firstNonEmpty(getenv(config.EnvRedisPassword), cfg.Redis.Password),
		DB:       cfg.Redis.DB,
		Key:      firstNonEmpty(flags.redisKey, cfg.Redis.Key, credload.DefaultRedisKey),
	}
	if changed("redis-db") {
		if flags.redisDB < 0 {
			return loadOptions{}, fmt.Errorf("%w: --redis-db must not be negative", credload.ErrInvalidConfig)
		}
		opts.store.Redis.DB = flags.redisDB
	}

	if changed("timeout") {
		if flags.timeout <= 0 {
			return loadOptions{}, fmt.Errorf("%w: --timeout must be positive", credload.ErrInvalidConfig)
		}
		opts.timeout = flags.timeout
	} else {
		timeout, err := cfg.TimeoutOr(credload.DefaultTimeout)
		if err != nil {
			return loadOptions{}, err
		}
		opts.timeout = timeout
	}

	return opts, nil
}

func flagValue(changed bool, value string) string {
	if changed {
		return value
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
