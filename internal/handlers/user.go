package handlers

import (
	"net/http"

	"github.com/ppetukhova/recipebox/internal/handlers/render"
	"github.com/ppetukhova/recipebox/internal/handlers/userctx"
	"github.com/ppetukhova/recipebox/internal/models"
)

// UserResponse is the public representation of a user.
// The password hash never leaves the server.
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}

func handleCheckSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}
