package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the key-value persistence boundary for wallet state. Values
// are opaque byte slices; a zero ttl stores the value without expiry.
// PutIfAbsent writes only when no live value exists for the key and
// reports whether the write won; the check and the write are atomic, so
// it can back reservations across concurrent requests.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	PutIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
