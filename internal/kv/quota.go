package kv

import (
	"context"
	"fmt"
)

type quota struct {
	inner Store
	limit int
}

// WithQuota rejects values longer than limit bytes. A limit <= 0 disables the check.
func WithQuota(inner Store, limit int) Store {
	if limit <= 0 {
		return inner
	}
	return &quota{inner: inner, limit: limit}
}

func (q *quota) Get(ctx context.Context, key string) (string, bool, error) {
	return q.inner.Get(ctx, key)
}

func (q *quota) Set(ctx context.Context, key, value string) error {
	if len(value) > q.limit {
		return fmt.Errorf("%w: %d bytes for %q (limit %d)", ErrQuotaExceeded, len(value), key, q.limit)
	}
	return q.inner.Set(ctx, key, value)
}
