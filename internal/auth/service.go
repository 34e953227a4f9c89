package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hrgrifes/atelier-backend/pkg/auth"
	"github.com/hrgrifes/atelier-backend/pkg/auth/session"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
	"github.com/hrgrifes/atelier-backend/pkg/security"
)

type sessionManager interface {
	Create(ctx context.Context, adminMode bool) (string, error)
	Get(ctx context.Context, sessionID string) (session.Session, error)
	SetAdminMode(ctx context.Context, sessionID string, adminMode bool) error
	Revoke(ctx context.Context, sessionID string) error
}

// LoginResult is the issued credential for a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AdminMode bool      `json:"admin_mode"`
}

// Service authenticates the site operator. There is a single credential, so
// login is a password check rather than a user lookup; the issued token's jti
// keys an ephemeral session record that logout revokes.
type Service struct {
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
	sessions sessionManager
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, sessions sessionManager, logg *logger.Logger) *Service {
	return &Service{
		jwtCfg:   jwtCfg,
		adminCfg: adminCfg,
		sessions: sessions,
		logg:     logg,
		now:      time.Now,
	}
}

// Login verifies the operator password and issues a token. A fresh session
// starts with edit mode on, matching what the operator logged in for.
func (s *Service) Login(ctx context.Context, password string) (LoginResult, error) {
	if strings.TrimSpace(password) == "" {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	ok, err := security.VerifyPassword(password, s.adminCfg.PasswordHash)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credentials")
	}
	if !ok {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	sessionID, err := s.sessions.Create(ctx, true)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		SessionID: sessionID,
		AdminMode: true,
	})
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "operator logged in")
	}
	return LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		AdminMode: true,
	}, nil
}

// Logout revokes the calling session. Revoking a session that already expired
// is not an error.
func (s *Service) Logout(ctx context.Context) error {
	current, ok := session.FromContext(ctx)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.sessions.Revoke(ctx, current.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithSessionID(ctx, current.ID), "operator logged out")
	}
	return nil
}

// SetAdminMode flips the edit-mode flag on the calling session without
// re-authenticating.
func (s *Service) SetAdminMode(ctx context.Context, enabled bool) error {
	current, ok := session.FromContext(ctx)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.sessions.SetAdminMode(ctx, current.ID, enabled); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update session")
	}
	return nil
}

// Session returns the calling session's current record.
func (s *Service) Session(ctx context.Context) (session.Session, error) {
	current, ok := session.FromContext(ctx)
	if !ok {
		return session.Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	record, err := s.sessions.Get(ctx, current.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return session.Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return session.Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	return record, nil
}
