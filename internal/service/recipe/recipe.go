package recipe

import (
	"context"

	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/repository"
)

type RecipeService struct {
	// Repository to access long term data
	recipeRepo repository.RecipeRepo
}

func NewService(recipeRepo repository.RecipeRepo) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
	}
}

type CreateParams struct {
	Title             string
	Instructions      string
	MinutesToComplete *int32
}

func (s *RecipeService) CreateRecipe(ctx context.Context, arg CreateParams, user *models.User) (models.Recipe, error) {
	rec, err := s.recipeRepo.CreateRecipe(ctx, repository.CreateRecipeParams{
		Title:             arg.Title,
		Instructions:      arg.Instructions,
		MinutesToComplete: arg.MinutesToComplete,
		UserID:            user.ID,
	})
	if err != nil {
		return rec, err
	}

	rec.User = *user
	return rec, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.recipeRepo.ListRecipes(ctx)
}
