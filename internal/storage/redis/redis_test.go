package redis

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/dropin/internal/models"
)

// newTestStore connects to DROPIN_TEST_REDIS_ADDR and skips when it is unset.
func newTestStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("DROPIN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DROPIN_TEST_REDIS_ADDR not set")
	}

	prefix := fmt.Sprintf("dropin-test-%d:", time.Now().UnixNano())
	store, err := New(context.Background(), Options{Addr: addr, Prefix: prefix})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() {
		_ = store.RemoveItem(context.Background(), "participants")
		_ = store.Close()
	})
	return store
}

func TestRedisStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty roster, got %v", got)
	}

	want := []models.Participant{
		{ID: "a", Name: "Alice", PaymentMethod: models.PaymentETransfer, Note: "A"},
		{ID: "b", Name: "Bob"},
	}
	if err := store.SaveRoster(ctx, want); err != nil {
		t.Fatalf("SaveRoster failed: %v", err)
	}
	got, err = store.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNewUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := New(ctx, Options{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("expected connection error")
	}
}
