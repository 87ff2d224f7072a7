package repository

import (
	"context"

	"github.com/ppetukhova/recipebox/internal/models"
)

type CreateUserParams struct {
	Username     string
	PasswordHash string
	ImageURL     *string
	Bio          *string
}

// User repository interface
// If user with the username exists already CreateUser has to return
// apperrors.ErrUsernameTaken. Get methods return apperrors.ErrUserNotFound
// when nothing matches.
type UserRepo interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type CreateRecipeParams struct {
	Title             string
	Instructions      string
	MinutesToComplete *int32
	UserID            int64
}

// Recipe repository interface
// CreateRecipe has to return *apperrors.ConflictError on any
// integrity-constraint violation (unknown user id first of all).
type RecipeRepo interface {
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
}
