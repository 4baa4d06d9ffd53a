package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("SCHEDULE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCHEDULE_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	kv := NewRedisKV(RedisOptions{Addr: addr})
	defer kv.Close()

	if err := kv.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	key := fmt.Sprintf("schedule-test-%d", time.Now().UnixNano())
	if _, err := kv.Load(ctx, key); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Load of unknown key = %v, want ErrKeyNotFound", err)
	}

	s, err := Open(ctx, kv, WithKey(key))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	created, err := s.Create(ctx, standup)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer kv.client.Del(ctx, key)

	reopened, err := Open(ctx, kv, WithKey(key))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, ok := reopened.Get(created.ID); !ok || got != created {
		t.Errorf("reopened Get = %+v, %v", got, ok)
	}
}
