package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the opaque session ID.
const CookieName = "session_id"

// Manager issues, resolves, and destroys sessions over the cookie transport.
type Manager struct {
	store         Store
	ttl           time.Duration
	secureCookies bool
}

// NewManager creates a session manager on top of the given store.
func NewManager(store Store, ttl time.Duration, secureCookies bool) *Manager {
	return &Manager{store: store, ttl: ttl, secureCookies: secureCookies}
}

// Issue creates a fresh session bound to userID and sets the session cookie.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, userID string) error {
	sessionID := uuid.New().String()
	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return nil
}

// Resolve maps the request's session cookie to a user ID. Requests without a
// valid session yield ErrSessionNotFound.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrSessionNotFound
	}
	return m.store.Get(ctx, cookie.Value)
}

// Destroy removes the server-side session state entirely and expires the
// cookie. Destroying an absent or already-destroyed session returns
// ErrSessionNotFound.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ErrSessionNotFound
	}
	if _, err := m.store.Get(ctx, cookie.Value); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, cookie.Value); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return nil
}
