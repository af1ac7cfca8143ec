package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores key-value records in PostgreSQL. Offered for parity with
// the other backends; the demo normally runs on SQLite.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool, verifies connectivity and migrates the
// schema.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		expires_at TIMESTAMPTZ
	)`)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	row := p.pool.QueryRow(ctx, `SELECT value, expires_at FROM kv WHERE key = $1`, key)

	var value []byte
	var expiresAt *time.Time
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if expiresAt != nil && time.Now().After(*expiresAt) {
		_, _ = p.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key)
		return nil, ErrNotFound
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := p.pool.Exec(ctx, `INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, value, expiresAt)
	return err
}

func (p *Postgres) PutIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	// A live row wins the conflict; an expired row is reclaimed.
	res, err := p.pool.Exec(ctx, `INSERT INTO kv (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
		WHERE kv.expires_at IS NOT NULL AND kv.expires_at <= now()`,
		key, value, expiresAt)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
