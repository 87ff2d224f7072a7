package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppetukhova/recipebox/internal/apperrors"
)

// Build request carrying cookies from the recorded response
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestManager(t *testing.T) {
	newManager := func(t *testing.T, cfg Config) *Manager {
		m, err := NewManager(cfg, NewMemoryStore())
		require.NoError(t, err, "manager should be created ok")
		return m
	}

	t.Run("nil store fails", func(t *testing.T) {
		_, err := NewManager(Config{}, nil)
		require.Error(t, err)
	})

	t.Run("start sets cookie", func(t *testing.T) {
		m := newManager(t, Config{})
		rec := httptest.NewRecorder()

		token, err := m.Start(t.Context(), rec, 42)

		require.NoError(t, err)
		require.NotEmpty(t, token)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, "session", cookie.Name, "default cookie name should be used")
		assert.Equal(t, token, cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly, "session cookie should be HttpOnly")
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.InDelta(t, (24 * time.Hour).Seconds(), cookie.MaxAge, 1, "max age should be default TTL")
	})

	t.Run("current resolves started session", func(t *testing.T) {
		m := newManager(t, Config{})
		rec := httptest.NewRecorder()

		_, err := m.Start(t.Context(), rec, 42)
		require.NoError(t, err)

		userID, err := m.Current(t.Context(), requestWithCookies(t, rec))

		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("current without cookie", func(t *testing.T) {
		m := newManager(t, Config{})

		_, err := m.Current(t.Context(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("current with unknown token", func(t *testing.T) {
		m := newManager(t, Config{})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "no-such-token"})
		_, err := m.Current(t.Context(), req)

		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		m := newManager(t, Config{TTL: time.Nanosecond})
		rec := httptest.NewRecorder()

		_, err := m.Start(t.Context(), rec, 42)
		require.NoError(t, err)

		time.Sleep(time.Millisecond)
		_, err = m.Current(t.Context(), requestWithCookies(t, rec))

		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("end invalidates and clears cookie", func(t *testing.T) {
		m := newManager(t, Config{})
		rec := httptest.NewRecorder()

		_, err := m.Start(t.Context(), rec, 42)
		require.NoError(t, err)
		req := requestWithCookies(t, rec)

		endRec := httptest.NewRecorder()
		err = m.End(t.Context(), endRec, req)
		require.NoError(t, err)

		cookies := endRec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value, "cookie value should be cleared")
		assert.Equal(t, -1, cookies[0].MaxAge, "cookie should be expired")

		// Token no longer resolves
		_, err = m.Current(t.Context(), req)
		require.ErrorIs(t, err, apperrors.ErrNoSession)

		// Ending again reports no session
		err = m.End(t.Context(), httptest.NewRecorder(), req)
		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("end without session", func(t *testing.T) {
		m := newManager(t, Config{})

		err := m.End(t.Context(), httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/", nil))

		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("custom cookie name", func(t *testing.T) {
		m := newManager(t, Config{CookieName: "recipebox"})
		rec := httptest.NewRecorder()

		_, err := m.Start(t.Context(), rec, 1)
		require.NoError(t, err)
		require.Equal(t, "recipebox", rec.Result().Cookies()[0].Name)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("save get delete", func(t *testing.T) {
		s := NewMemoryStore()

		err := s.Save(t.Context(), "token", 7, time.Now().Add(time.Hour))
		require.NoError(t, err)

		userID, err := s.Get(t.Context(), "token")
		require.NoError(t, err)
		require.Equal(t, int64(7), userID)

		require.NoError(t, s.Delete(t.Context(), "token"))

		_, err = s.Get(t.Context(), "token")
		require.ErrorIs(t, err, apperrors.ErrNoSession)
	})

	t.Run("delete absent token is noop", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Delete(t.Context(), "never-existed"))
	})

	t.Run("concurrent access", func(t *testing.T) {
		s := NewMemoryStore()
		done := make(chan struct{})

		for i := range 10 {
			go func(n int) {
				defer func() { done <- struct{}{} }()

				token := string(rune('a' + n))
				_ = s.Save(t.Context(), token, int64(n), time.Now().Add(time.Hour))
				_, _ = s.Get(t.Context(), token)
				_ = s.Delete(t.Context(), token)
			}(i)
		}

		for range 10 {
			<-done
		}
	})
}
