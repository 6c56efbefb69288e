package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/erazemk/oglasna/internal/db"
)

// Postgres is a Store backed by a kv table in Postgres.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and ensures the kv table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, db.PostgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating postgres schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Get returns the value and version stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var value []byte
	var version int64
	err := p.pool.QueryRow(ctx,
		`SELECT value, version FROM kv WHERE key = $1`, key,
	).Scan(&value, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, version, nil
}

// Put writes value if the stored version equals version.
func (p *Postgres) Put(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	var sql string
	var args []any

	if version == 0 {
		sql = `INSERT INTO kv (key, value, version) VALUES ($1, $2, 1)
		       ON CONFLICT (key) DO NOTHING`
		args = []any{key, value}
	} else {
		sql = `UPDATE kv SET value = $1, version = version + 1, updated_at = now()
		       WHERE key = $2 AND version = $3`
		args = []any{value, key, version}
	}

	tag, err := p.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("putting %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrConflict
	}
	return version + 1, nil
}
