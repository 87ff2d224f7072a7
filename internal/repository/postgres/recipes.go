package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/repository"
)

type RecipeRepo struct {
	DB DBTX
}

const createRecipe = `-- name: CreateRecipe
INSERT INTO recipes (title, instructions, minutes_to_complete, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, title, instructions, minutes_to_complete, user_id
`

func (r *RecipeRepo) CreateRecipe(ctx context.Context, arg repository.CreateRecipeParams) (models.Recipe, error) {
	rows, _ := r.DB.Query(ctx, createRecipe, arg.Title, arg.Instructions, arg.MinutesToComplete, arg.UserID)
	recipe, err := pgx.CollectOneRow(rows, rowToRecipe)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return recipe, &apperrors.ConflictError{Reason: pgErr.Message}
		}
	}

	return recipe, err
}

// Recipes are listed together with the owning user so clients get the
// author's public profile in one request. Order by id keeps the listing
// stable between calls; it is not part of the API contract.
const listRecipes = `-- name: ListRecipes
SELECT r.id, r.created_at, r.title, r.instructions, r.minutes_to_complete, r.user_id,
       u.id, u.created_at, u.username, u.password_hash, u.image_url, u.bio
FROM recipes r
JOIN users u ON u.id = r.user_id
ORDER BY r.id
`

func (r *RecipeRepo) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	rows, _ := r.DB.Query(ctx, listRecipes)
	return pgx.CollectRows(rows, rowToRecipeWithUser)
}

func rowToRecipe(row pgx.CollectableRow) (models.Recipe, error) {
	var rec models.Recipe
	err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.Title, &rec.Instructions, &rec.MinutesToComplete, &rec.UserID)
	return rec, err
}

func rowToRecipeWithUser(row pgx.CollectableRow) (models.Recipe, error) {
	var rec models.Recipe
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.Title, &rec.Instructions, &rec.MinutesToComplete, &rec.UserID,
		&rec.User.ID, &rec.User.CreatedAt, &rec.User.Username, &rec.User.PasswordHash, &rec.User.ImageURL, &rec.User.Bio,
	)
	return rec, err
}
