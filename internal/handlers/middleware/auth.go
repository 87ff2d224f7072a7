package middleware

import (
	"context"
	"net/http"

	"github.com/ppetukhova/recipebox/internal/handlers/render"
	"github.com/ppetukhova/recipebox/internal/handlers/userctx"
	"github.com/ppetukhova/recipebox/internal/models"
)

type sessionManager interface {
	Current(ctx context.Context, r *http.Request) (int64, error)
}

type userService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// AuthMiddleware resolves the session cookie to a user and puts it on the
// request context. A session whose user id no longer resolves (deleted
// account) is treated the same as no session at all.
func AuthMiddleware(sessions sessionManager, users userService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.Current(r.Context(), r)
			if err != nil {
				render.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				render.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
