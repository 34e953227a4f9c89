package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type plainKeyer struct{}

func (plainKeyer) SessionKey(id string) string { return "session:" + id }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: plainKeyer{}, ttl: time.Hour}, store
}

func TestCreateGetRevokeLifecycle(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	id, err := mgr.Create(ctx, true)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if id == "" {
		t.Fatalf("expected session id")
	}

	rec, err := mgr.Get(ctx, id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !rec.AdminMode {
		t.Fatalf("expected admin mode on")
	}
	if rec.ID != id {
		t.Fatalf("expected id %q on record, got %q", id, rec.ID)
	}

	if err := mgr.Revoke(ctx, id); err != nil {
		t.Fatalf("revoke session: %v", err)
	}
	if _, err := mgr.Get(ctx, id); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after revoke, got %v", err)
	}
}

func TestSetAdminModeFlipsFlag(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	id, err := mgr.Create(ctx, true)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := mgr.SetAdminMode(ctx, id, false); err != nil {
		t.Fatalf("set admin mode: %v", err)
	}
	rec, err := mgr.Get(ctx, id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if rec.AdminMode {
		t.Fatalf("expected admin mode off")
	}
}

func TestSetAdminModeRequiresExistingSession(t *testing.T) {
	mgr, _ := newTestManager()
	if err := mgr.SetAdminMode(context.Background(), "missing", true); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetUnknownSession(t *testing.T) {
	mgr, _ := newTestManager()
	if _, err := mgr.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithSession(context.Background(), Session{ID: "s1", AdminMode: true})
	s, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("expected session in context")
	}
	if s.ID != "s1" || !s.AdminMode {
		t.Fatalf("unexpected session %+v", s)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no session on bare context")
	}
}
