package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/handlers/render"
	"github.com/ppetukhova/recipebox/internal/handlers/userctx"
	"github.com/ppetukhova/recipebox/internal/logger"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/service/recipe"
)

type recipeService interface {
	// CreateRecipe persists a recipe owned by the user
	// Has to return *apperrors.ConflictError on store integrity violations
	CreateRecipe(ctx context.Context, arg recipe.CreateParams, user *models.User) (models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
}

type RecipeResponse struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Instructions      string       `json:"instructions"`
	MinutesToComplete *int32       `json:"minutes_to_complete"`
	UserID            int64        `json:"user_id"`
	User              UserResponse `json:"user"`
}

func toRecipeResponse(rec models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                rec.ID,
		Title:             rec.Title,
		Instructions:      rec.Instructions,
		MinutesToComplete: rec.MinutesToComplete,
		UserID:            rec.UserID,
		User:              toUserResponse(rec.User),
	}
}

func handleListRecipes(recipes recipeService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := recipes.ListRecipes(r.Context())
		if err != nil {
			l.Error("can't list recipes", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Initialized slice so an empty listing renders as [] not null
		response := make([]RecipeResponse, 0, len(list))
		for _, rec := range list {
			response = append(response, toRecipeResponse(rec))
		}

		render.JSON(w, response)
	})
}

func handleCreateRecipe(recipes recipeService, l logger.Logger) http.Handler {
	type request struct {
		Title             string `json:"title" validate:"required"`
		Instructions      string `json:"instructions" validate:"required"`
		MinutesToComplete *int32 `json:"minutes_to_complete"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		rec, err := recipes.CreateRecipe(r.Context(), recipe.CreateParams{
			Title:             data.Title,
			Instructions:      data.Instructions,
			MinutesToComplete: data.MinutesToComplete,
		}, &user)

		var conflict *apperrors.ConflictError
		switch {
		case err == nil:
			render.JSONWithStatus(w, toRecipeResponse(rec), http.StatusCreated)
		case errors.As(err, &conflict):
			// Unlike signup the message here is the store's own text
			render.Error(w, conflict.Reason, http.StatusUnprocessableEntity)
		default:
			l.Error("can't create recipe", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
