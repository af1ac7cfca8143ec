package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisRoundTrip(t *testing.T) {
	store, _ := setupRedis(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("expected v, got %q", got)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisPutIfAbsent(t *testing.T) {
	store, _ := setupRedis(t)
	ctx := context.Background()

	reserved, err := store.PutIfAbsent(ctx, "lock", []byte("a"), time.Minute)
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	if !reserved {
		t.Fatal("first reservation should win")
	}

	reserved, err = store.PutIfAbsent(ctx, "lock", []byte("b"), time.Minute)
	if err != nil {
		t.Fatalf("second reservation: %v", err)
	}
	if reserved {
		t.Fatal("reservation won over a live key")
	}

	got, err := store.Get(ctx, "lock")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "a" {
		t.Fatalf("losing reservation overwrote the value: %q", got)
	}
}

func TestRedisTTLExpiry(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	if err := store.Put(ctx, "ephemeral", []byte("x"), time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "ephemeral"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired key to be gone, got %v", err)
	}
}
