package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `
	CREATE TABLE IF NOT EXISTS kv_slots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// PostgresSlot stores slots as rows of the kv_slots table.
type PostgresSlot struct {
	pool *pgxpool.Pool
}

// NewPostgresSlot creates the kv_slots table if it does not exist yet.
func NewPostgresSlot(ctx context.Context, pool *pgxpool.Pool) (*PostgresSlot, error) {
	if _, err := pool.Exec(ctx, createSlotsTable); err != nil {
		return nil, fmt.Errorf("creating kv_slots table: %w", err)
	}
	return &PostgresSlot{pool: pool}, nil
}

func (p *PostgresSlot) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSlotEmpty
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *PostgresSlot) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}
