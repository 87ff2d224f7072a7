package e2e

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/ppetukhova/recipebox/internal/handlers"
	"github.com/ppetukhova/recipebox/internal/logger"
	"github.com/ppetukhova/recipebox/internal/repository/postgres"
	"github.com/ppetukhova/recipebox/internal/service/auth"
	"github.com/ppetukhova/recipebox/internal/service/recipe"
	"github.com/ppetukhova/recipebox/internal/session"
	"github.com/ppetukhova/recipebox/internal/testutil"
)

type Services struct {
	AuthService   *auth.AuthService
	RecipeService *recipe.RecipeService
	Sessions      *session.Manager
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		recipeRepo := &postgres.RecipeRepo{DB: tx}

		// Initialize services
		authService := auth.NewService(auth.DefaultHasher, userRepo)
		recipeService := recipe.NewService(recipeRepo)

		sessions, err := session.NewManager(session.Config{}, session.NewMemoryStore())
		require.NoError(t, err, "session manager should be created without errors")

		// Run http server with the router in transaction
		router := handlers.NewRouter(authService, recipeService, sessions, logger.NewNoOp())
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			AuthService:   authService,
			RecipeService: recipeService,
			Sessions:      sessions,
		})
	})
}

// Client with cookie jar, so the session cookie from signup or login
// authenticates every following request
func NewClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err, "cookie jar should be created ok")

	return &http.Client{Jar: jar}
}
