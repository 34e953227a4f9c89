package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrgrifes/atelier-backend/pkg/config"
	redisclient "github.com/hrgrifes/atelier-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager owns the ephemeral session records. Records live in Redis with the
// token TTL, so an expired token and a missing record fail the same way.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Get(ctx context.Context, sessionID string) (Session, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, keyer: client, ttl: ttl}, nil
}

// Create stores a fresh session record and returns its identifier.
func (m *Manager) Create(ctx context.Context, adminMode bool) (string, error) {
	id := uuid.NewString()
	record := Session{AdminMode: adminMode}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encoding session record: %w", err)
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(id), string(payload), m.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the session record for the identifier.
func (m *Manager) Get(ctx context.Context, sessionID string) (Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Session{}, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	var record Session
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return Session{}, fmt.Errorf("decoding session record: %w", err)
	}
	record.ID = sessionID
	return record, nil
}

// SetAdminMode rewrites the record with the flipped edit-mode flag. The TTL is
// refreshed; toggling keeps the session alive.
func (m *Manager) SetAdminMode(ctx context.Context, sessionID string, adminMode bool) error {
	if _, err := m.Get(ctx, sessionID); err != nil {
		return err
	}
	payload, err := json.Marshal(Session{AdminMode: adminMode})
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), string(payload), m.ttl)
}

// Revoke deletes the session record.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}
