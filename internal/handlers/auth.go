package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/handlers/render"
	"github.com/ppetukhova/recipebox/internal/logger"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/service/auth"
)

type authService interface {
	// Signup creates a user
	// Has to return apperrors.ErrUsernameTaken if the username is taken
	Signup(ctx context.Context, arg auth.SignupParams) (models.User, error)

	// Login verifies credentials
	// Has to return apperrors.ErrInvalidCredentials for unknown username
	// and wrong password alike
	Login(ctx context.Context, username string, password string) (models.User, error)

	// GetUser loads user by id
	GetUser(ctx context.Context, id int64) (models.User, error)
}

type sessionManager interface {
	Start(ctx context.Context, w http.ResponseWriter, userID int64) (string, error)
	Current(ctx context.Context, r *http.Request) (int64, error)
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

func handleSignup(authService authService, sessions sessionManager, l logger.Logger) http.Handler {
	type request struct {
		Username string  `json:"username" validate:"required"`
		Password string  `json:"password" validate:"required"`
		ImageURL *string `json:"image_url"`
		Bio      *string `json:"bio"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := authService.Signup(r.Context(), auth.SignupParams{
			Username: data.Username,
			Password: data.Password,
			ImageURL: data.ImageURL,
			Bio:      data.Bio,
		})
		switch {
		case err == nil:
		case errors.Is(err, apperrors.ErrUsernameTaken):
			render.Error(w, "Username already exists", http.StatusUnprocessableEntity)
			return
		default:
			l.Error("signup failed", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if _, err := sessions.Start(r.Context(), w, user.ID); err != nil {
			l.Error("can't start session", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, toUserResponse(user), http.StatusCreated)
	})
}

func handleLogin(authService authService, sessions sessionManager, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := authService.Login(r.Context(), data.Username, data.Password)
		switch {
		case err == nil:
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		default:
			l.Error("login failed", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if _, err := sessions.Start(r.Context(), w, user.ID); err != nil {
			l.Error("can't start session", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}

func handleLogout(sessions sessionManager, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := sessions.End(r.Context(), w, r)
		switch {
		case err == nil:
			render.NoContent(w)
		case errors.Is(err, apperrors.ErrNoSession):
			render.Error(w, "Unauthorized", http.StatusUnauthorized)
		default:
			l.Error("logout failed", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
