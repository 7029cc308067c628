package kv

import (
	"context"
	"fmt"

	"github.com/example/littlelemon/internal/db"
	"github.com/example/littlelemon/internal/migrate"
)

// Postgres stores values in the kv_store table.
type Postgres struct{ db *db.DB }

// OpenPostgres connects, pings and applies migrations.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	d, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, err
	}
	return &Postgres{db: d}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&v)
	if err != nil {
		if db.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, db.WrapNotFound(err)
	}
	return v, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	return p.db.Exec(ctx, `
INSERT INTO kv_store(key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`, key, value)
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
