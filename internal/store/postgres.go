package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/credload/internal/retry"
	"github.com/vvka-141/credload/pkg/credload"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is small: a load uses one connection at a time.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime closes connections left idle between loads.
	DefaultMaxConnIdleTime = 5 * time.Minute
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
	username  text PRIMARY KEY,
	pin       integer NOT NULL CHECK (pin BETWEEN 1000 AND 9999),
	load_id   text,
	loaded_at timestamptz NOT NULL DEFAULT now()
)`

	upsertSQL = `INSERT INTO %s (username, pin, load_id, loaded_at)
VALUES ($1, $2, NULLIF($3, ''), now())
ON CONFLICT (username) DO UPDATE
SET pin = EXCLUDED.pin, load_id = EXCLUDED.load_id, loaded_at = EXCLUDED.loaded_at`

	snapshotSQL = `SELECT username, pin FROM %s`
)

// Postgres stores credentials as rows of a single table.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type Postgres struct {
	pool     *pgxpool.Pool
	table    string
	executor *retry.Executor
	logger   credload.Logger
}

// QuoteTable validates and quotes a table name, optionally schema-qualified
// ("schema.table").
func QuoteTable(table string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("%w: table name is empty", credload.ErrInvalidConfig)
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: table name %q has more than one schema qualifier", credload.ErrInvalidConfig, table)
	}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: table name %q has an empty part", credload.ErrInvalidConfig, table)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

// NewPostgres uses an existing pool. The pool is closed by Close.
func NewPostgres(pool *pgxpool.Pool, table string, opts ...Option) (*Postgres, error) {
	if pool == nil {
		panic("pool cannot be nil")
	}
	quoted, err := QuoteTable(table)
	if err != nil {
		return nil, err
	}

	s := newSettings(opts)
	return &Postgres{
		pool:     pool,
		table:    quoted,
		executor: s.executor(credload.StorePostgres, retry.NewPostgreSQLErrorClassifier()),
		logger:   s.logger,
	}, nil
}

// ConnectPostgres opens a pool for dsn, retrying transient connection
// failures, and verifies it with a ping.
func ConnectPostgres(ctx context.Context, dsn, table string, opts ...Option) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parse postgres DSN: %w", credload.ErrInvalidConfig, err)
	}
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime

	s := newSettings(opts)
	connectExecutor := s.executor(credload.StorePostgres, retry.NewPostgreSQLErrorClassifier())

	var pool *pgxpool.Pool
	err = connectExecutor.Execute(ctx, func(ctx context.Context) error {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: postgres %s:%d/%s: %w", credload.ErrConnectionFailed,
			poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database, err)
	}

	p, err := NewPostgres(pool, table, opts...)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Name returns credload.StorePostgres.
func (p *Postgres) Name() string {
	return credload.StorePostgres
}

// EnsureSchema creates the credential table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	err := p.executor.Execute(ctx, func(ctx context.Context) error {
		_, err := p.pool.Exec(ctx, fmt.Sprintf(createTableSQL, p.table))
		return err
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}
	return nil
}

// Commit upserts every entry inside one transaction, in order.
// A transient failure rolls the transaction back and replays it.
func (p *Postgres) Commit(ctx context.Context, entries []credload.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	loadID := credload.LoadIDFromContext(ctx)
	query := fmt.Sprintf(upsertSQL, p.table)

	err := p.executor.Execute(ctx, func(ctx context.Context) error {
		return p.commitOnce(ctx, query, loadID, entries)
	})
	if err != nil {
		return fmt.Errorf("%w: postgres %s: %w", credload.ErrCommitFailed, p.table, err)
	}
	p.logger.Verbose("postgres: upserted %d row(s) into %s", len(entries), p.table)
	return nil
}

func (p *Postgres) commitOnce(ctx context.Context, query, loadID string, entries []credload.Entry) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.Username, e.PIN, loadID)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("upsert entry %d: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("complete upsert batch: %w", err)
	}

	return tx.Commit(ctx)
}

// Snapshot reads the whole table.
func (p *Postgres) Snapshot(ctx context.Context) (credload.Credentials, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf(snapshotSQL, p.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.table, err)
	}
	defer rows.Close()

	creds := make(credload.Credentials)
	for rows.Next() {
		var username string
		var pin int
		if err := rows.Scan(&username, &pin); err != nil {
			return nil, fmt.Errorf("scan %s: %w", p.table, err)
		}
		creds[username] = pin
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p.table, err)
	}
	return creds, nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

var _ Backend = (*Postgres)(nil)
