// Package kv is the string key-value storage the reservation collection is
// persisted in, with interchangeable backends.
package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by Set when a value does not fit the backend's quota.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// Store gets and sets string values. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend is a Store that owns a connection or file handle.
type Backend interface {
	Store
	Close() error
}
