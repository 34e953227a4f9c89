package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/hrgrifes/atelier-backend/pkg/auth"
	"github.com/hrgrifes/atelier-backend/pkg/auth/session"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/security"
)

type fakeSessions struct {
	records map[string]session.Session
	nextID  string
	created int
	revoked []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{records: map[string]session.Session{}, nextID: "sess-1"}
}

func (f *fakeSessions) Create(ctx context.Context, adminMode bool) (string, error) {
	f.created++
	id := f.nextID
	f.records[id] = session.Session{ID: id, AdminMode: adminMode}
	return id, nil
}

func (f *fakeSessions) Get(ctx context.Context, sessionID string) (session.Session, error) {
	record, ok := f.records[sessionID]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return record, nil
}

func (f *fakeSessions) SetAdminMode(ctx context.Context, sessionID string, adminMode bool) error {
	record, ok := f.records[sessionID]
	if !ok {
		return session.ErrSessionNotFound
	}
	record.AdminMode = adminMode
	f.records[sessionID] = record
	return nil
}

func (f *fakeSessions) Revoke(ctx context.Context, sessionID string) error {
	f.revoked = append(f.revoked, sessionID)
	delete(f.records, sessionID)
	return nil
}

func testConfigs(t *testing.T) (config.JWTConfig, config.AdminConfig) {
	t.Helper()
	hash, err := security.HashPassword("atelier-secret", config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "atelier", ExpirationMinutes: 60}
	return jwtCfg, config.AdminConfig{PasswordHash: hash}
}

func TestLoginIssuesSessionToken(t *testing.T) {
	jwtCfg, adminCfg := testConfigs(t)
	sessions := newFakeSessions()
	svc := NewService(jwtCfg, adminCfg, sessions, nil)

	result, err := svc.Login(context.Background(), "atelier-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !result.AdminMode {
		t.Fatal("fresh login should enable edit mode")
	}
	if sessions.created != 1 {
		t.Fatalf("sessions created = %d", sessions.created)
	}
	if result.ExpiresAt.Before(time.Now()) {
		t.Fatalf("expires_at = %s", result.ExpiresAt)
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.ID != "sess-1" {
		t.Fatalf("jti = %q", claims.ID)
	}
	if !claims.AdminMode {
		t.Fatal("token should carry edit mode")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	jwtCfg, adminCfg := testConfigs(t)
	sessions := newFakeSessions()
	svc := NewService(jwtCfg, adminCfg, sessions, nil)

	_, err := svc.Login(context.Background(), "wrong")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("wrong password: %v", err)
	}
	if sessions.created != 0 {
		t.Fatal("failed login created a session")
	}

	_, err = svc.Login(context.Background(), "  ")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("blank password: %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	jwtCfg, adminCfg := testConfigs(t)
	sessions := newFakeSessions()
	svc := NewService(jwtCfg, adminCfg, sessions, nil)

	if _, err := svc.Login(context.Background(), "atelier-secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	ctx := session.WithSession(context.Background(), session.Session{ID: "sess-1", AdminMode: true})
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "sess-1" {
		t.Fatalf("revoked = %v", sessions.revoked)
	}

	err := svc.Logout(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("anonymous logout: %v", err)
	}
}

func TestSetAdminMode(t *testing.T) {
	jwtCfg, adminCfg := testConfigs(t)
	sessions := newFakeSessions()
	svc := NewService(jwtCfg, adminCfg, sessions, nil)

	if _, err := svc.Login(context.Background(), "atelier-secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	ctx := session.WithSession(context.Background(), session.Session{ID: "sess-1", AdminMode: true})

	if err := svc.SetAdminMode(ctx, false); err != nil {
		t.Fatalf("disable edit mode: %v", err)
	}
	record, err := svc.Session(ctx)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if record.AdminMode {
		t.Fatal("edit mode still on")
	}

	// An expired record maps to unauthorized, not a dependency failure.
	stale := session.WithSession(context.Background(), session.Session{ID: "gone"})
	err = svc.SetAdminMode(stale, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("stale session: %v", err)
	}
}
