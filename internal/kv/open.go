package kv

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Path          string
	SQLiteDSN     string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Open(ctx context.Context, o Options) (Backend, error) {
	switch o.Backend {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		return NewFile(o.Path)
	case "sqlite":
		return OpenSQLite(ctx, o.SQLiteDSN)
	case "postgres":
		return OpenPostgres(ctx, o.DatabaseURL)
	case "redis":
		return OpenRedis(ctx, o.RedisAddr, o.RedisPassword, o.RedisDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", o.Backend)
	}
}
