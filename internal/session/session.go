package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ppetukhova/recipebox/internal/apperrors"
)

const (
	defaultCookieName = "session"
	defaultTTL        = 24 * time.Hour
)

type Config struct {
	// Cookie name the token travels in. Defaults to "session".
	CookieName string

	// How long a started session stays valid. Defaults to 24h.
	TTL time.Duration

	// Set the Secure flag on the cookie. Off by default so local
	// plain-http development keeps working.
	Secure bool
}

// Manager maps opaque cookie tokens to user ids through an injected Store.
// Handlers receive it as a dependency, there is no ambient session state.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(cfg Config, store Store) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store must not be nil")
	}

	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	return &Manager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}, nil
}

// Start issues a new token for the user and sets it on the response.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID int64) (string, error) {
	token := uuid.NewString()

	if err := m.store.Save(ctx, token, userID, time.Now().Add(m.ttl)); err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}

// Current resolves the request's cookie to a user id.
// Returns apperrors.ErrNoSession when the cookie is absent, unknown or expired.
func (m *Manager) Current(ctx context.Context, r *http.Request) (int64, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return 0, apperrors.ErrNoSession
	}

	return m.store.Get(ctx, cookie.Value)
}

// End invalidates the request's session and expires the cookie.
// Returns apperrors.ErrNoSession when there was nothing to end.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return apperrors.ErrNoSession
	}

	if _, err := m.store.Get(ctx, cookie.Value); err != nil {
		return err
	}

	if err := m.store.Delete(ctx, cookie.Value); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
