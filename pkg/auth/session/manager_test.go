package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) AccessSessionKey(accessID string) string {
	return "sl:session:access:" + accessID
}

func newTestManager(store *memoryStore) *Manager {
	return &Manager{store: store, keyer: staticKeyer{}, ttl: time.Hour}
}

func TestGenerateAndHasSession(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)
	ctx := context.Background()

	token, err := mgr.Generate(ctx, "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}

	ok, err := mgr.HasSession(ctx, "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected active session")
	}

	ok, err = mgr.HasSession(ctx, "unknown")
	if err != nil {
		t.Fatalf("has session unknown: %v", err)
	}
	if ok {
		t.Fatal("expected no session for unknown access id")
	}
}

func TestRotateReplacesSession(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)
	ctx := context.Background()

	token, err := mgr.Generate(ctx, "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newAccessID, newToken, err := mgr.Rotate(ctx, "access-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newAccessID == "access-1" {
		t.Fatal("expected a fresh access id")
	}
	if newToken == token {
		t.Fatal("expected a fresh refresh token")
	}

	if ok, _ := mgr.HasSession(ctx, "access-1"); ok {
		t.Fatal("expected old session to be revoked")
	}
	if ok, _ := mgr.HasSession(ctx, newAccessID); !ok {
		t.Fatal("expected new session to be active")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)
	ctx := context.Background()

	if _, err := mgr.Generate(ctx, "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := mgr.Rotate(ctx, "access-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	// The original session survives a failed rotation.
	if ok, _ := mgr.HasSession(ctx, "access-1"); !ok {
		t.Fatal("expected session to remain active")
	}
}

func TestRotateRejectsMissingSession(t *testing.T) {
	mgr := newTestManager(newMemoryStore())
	if _, _, err := mgr.Rotate(context.Background(), "gone", "whatever"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store)
	ctx := context.Background()

	if _, err := mgr.Generate(ctx, "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := mgr.Revoke(ctx, "access-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := mgr.HasSession(ctx, "access-1"); ok {
		t.Fatal("expected session gone after revoke")
	}
}
