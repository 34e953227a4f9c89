package session

import "context"

// Session is the authenticated operator state carried through request context.
// AdminMode implies an authenticated session; anonymous requests carry no
// Session at all.
type Session struct {
	ID        string `json:"-"`
	AdminMode bool   `json:"admin_mode"`
}

type ctxKey struct{}

// WithSession seeds the request context with the verified session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session when the request was authenticated.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
