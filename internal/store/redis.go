package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/credload/internal/retry"
	"github.com/vvka-141/credload/pkg/credload"
)

// Redis stores credentials as fields of one hash.
//
// Thread-Safety: Safe for concurrent use (redis.UniversalClient is thread-safe).
type Redis struct {
	client   redis.UniversalClient
	key      string
	executor *retry.Executor
	logger   credload.Logger
}

// NewRedis uses an existing client. The client is closed by Close.
func NewRedis(client redis.UniversalClient, key string, opts ...Option) (*Redis, error) {
	if client == nil {
		panic("client cannot be nil")
	}
	if key == "" {
		return nil, fmt.Errorf("%w: redis key is empty", credload.ErrInvalidConfig)
	}

	s := newSettings(opts)
	return &Redis{
		client:   client,
		key:      key,
		executor: s.executor(credload.StoreRedis, retry.NewRedisErrorClassifier()),
		logger:   s.logger,
	}, nil
}

// ConnectRedis creates a client for options and pings it, retrying transient
// failures.
func ConnectRedis(ctx context.Context, options *redis.Options, key string, opts ...Option) (*Redis, error) {
	client := redis.NewClient(options)

	r, err := NewRedis(client, key, opts...)
	if err != nil {
		client.Close()
		return nil, err
	}

	err = r.executor.Execute(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis %s/%d: %w", credload.ErrConnectionFailed, options.Addr, options.DB, err)
	}
	return r, nil
}

// Name returns credload.StoreRedis.
func (r *Redis) Name() string {
	return credload.StoreRedis
}

// Commit writes all entries with one HSET, in order. The server applies the
// field/value pairs left to right, so a repeated username keeps its last PIN.
func (r *Redis) Commit(ctx context.Context, entries []credload.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	values := make([]any, 0, 2*len(entries))
	for _, e := range entries {
		values = append(values, e.Username, e.PIN)
	}

	err := r.executor.Execute(ctx, func(ctx context.Context) error {
		return r.client.HSet(ctx, r.key, values...).Err()
	})
	if err != nil {
		return fmt.Errorf("%w: redis %s: %w", credload.ErrCommitFailed, r.key, err)
	}
	r.logger.Verbose("redis: wrote %d field(s) to %s", len(entries), r.key)
	return nil
}

// Snapshot reads the whole hash.
func (r *Redis) Snapshot(ctx context.Context) (credload.Credentials, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", r.key, err)
	}

	creds := make(credload.Credentials, len(fields))
	for user, value := range fields {
		pin, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("hash %s: field %q is not a PIN: %w", r.key, user, err)
		}
		creds[user] = pin
	}
	return creds, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Backend = (*Redis)(nil)
