package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "snapshot:plan:p1", []byte(`{"plan_id":"p1"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "snapshot:plan:p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"plan_id":"p1"}` {
		t.Fatalf("unexpected value: %s", val)
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	val, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected miss to be error-free, got %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil value on miss, got %s", val)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "snapshot:plan:p1", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "snapshot:plan:p1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	val, err := cache.Get(ctx, "snapshot:plan:p1")
	if err != nil || val != nil {
		t.Fatalf("expected deleted key to read as miss, got val=%s err=%v", val, err)
	}
}
