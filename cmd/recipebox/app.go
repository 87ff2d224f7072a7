package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/ppetukhova/recipebox/internal/db"
	"github.com/ppetukhova/recipebox/internal/handlers"
	"github.com/ppetukhova/recipebox/internal/logger"
	"github.com/ppetukhova/recipebox/internal/repository/postgres"
	"github.com/ppetukhova/recipebox/internal/service/auth"
	"github.com/ppetukhova/recipebox/internal/service/recipe"
	"github.com/ppetukhova/recipebox/internal/session"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	userRepo := &postgres.UserRepo{DB: pool}
	recipeRepo := &postgres.RecipeRepo{DB: pool}

	// Initialize services
	authService := auth.NewService(auth.DefaultHasher, userRepo)
	recipeService := recipe.NewService(recipeRepo)

	sessions, err := session.NewManager(session.Config{TTL: c.SessionTTL}, session.NewMemoryStore())
	if err != nil {
		return nil, fmt.Errorf("error while creating session manager. Err: %w", err)
	}

	var handler http.Handler = handlers.NewRouter(authService, recipeService, sessions, l)

	// Browser frontends on other origins need CORS with credentials
	// enabled, otherwise the session cookie never travels
	if len(c.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   c.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler(handler)
	}

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    handler,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
