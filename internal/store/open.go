package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/credload/pkg/credload"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of credload.StoreMemory, credload.StorePostgres, credload.StoreRedis.
	Backend string

	Postgres PostgresConfig
	Redis    RedisConfig
}

// PostgresConfig configures the Postgres backend.
type PostgresConfig struct {
	DSN   string
	Table string

	// SkipSchema leaves table creation to the operator.
	SkipSchema bool
}

// RedisConfig configures the Redis backend.
// Addr is either host:port or a redis:// URL; a URL overrides Password and DB.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Open returns the backend named by cfg.Backend. The memory backend wraps
// creds; the others ignore it.
func Open(ctx context.Context, cfg Config, creds credload.Credentials, opts ...Option) (Backend, error) {
	switch cfg.Backend {
	case "", credload.StoreMemory:
		return NewMap(creds), nil

	case credload.StorePostgres:
		if cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("%w: postgres store requires a DSN", credload.ErrInvalidConfig)
		}
		table := cfg.Postgres.Table
		if table == "" {
			table = credload.DefaultPostgresTable
		}
		if _, err := QuoteTable(table); err != nil {
			return nil, err
		}
		p, err := ConnectPostgres(ctx, cfg.Postgres.DSN, table, opts...)
		if err != nil {
			return nil, err
		}
		if !cfg.Postgres.SkipSchema {
			if err := p.EnsureSchema(ctx); err != nil {
				p.Close()
				return nil, fmt.Errorf("%w: %w", credload.ErrConnectionFailed, err)
			}
		}
		return p, nil

	case credload.StoreRedis:
		options, err := redisOptions(cfg.Redis)
		if err != nil {
			return nil, err
		}
		key := cfg.Redis.Key
		if key == "" {
			key = credload.DefaultRedisKey
		}
		r, err := ConnectRedis(ctx, options, key, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil

	default:
		return nil, fmt.Errorf("%w: unknown store %q (expected %s, %s or %s)", credload.ErrInvalidConfig,
			cfg.Backend, credload.StoreMemory, credload.StorePostgres, credload.StoreRedis)
	}
}

func redisOptions(cfg RedisConfig) (*redis.Options, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: redis store requires an address", credload.ErrInvalidConfig)
	}
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		options, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("%w: parse redis URL: %w", credload.ErrInvalidConfig, err)
		}
		return options, nil
	}
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}
