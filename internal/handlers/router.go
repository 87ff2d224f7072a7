package handlers

import (
	"net/http"

	"github.com/ppetukhova/recipebox/internal/handlers/middleware"
	"github.com/ppetukhova/recipebox/internal/logger"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	recipeService recipeService,
	sessions sessionManager,
	l logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(sessions, authService)

	mux := http.NewServeMux()

	mux.Handle("POST /signup", handleSignup(authService, sessions, l))
	mux.Handle("POST /login", handleLogin(authService, sessions, l))
	mux.Handle("DELETE /logout", handleLogout(sessions, l))

	mux.Handle("GET /check_session", withAuth(handleCheckSession()))
	mux.Handle("GET /recipes", withAuth(handleListRecipes(recipeService, l)))
	mux.Handle("POST /recipes", withAuth(handleCreateRecipe(recipeService, l)))

	return chain(mux,
		middleware.LoggerMiddleware(l),
	)
}
