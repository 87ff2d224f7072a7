package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/repository"
	"github.com/ppetukhova/recipebox/internal/testutil"
)

func Test_RecipeRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Run test function with repos sharing one rolled back transaction
	withTx := func(t *testing.T, testFunc func(*RecipeRepo, *UserRepo)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			testFunc(&RecipeRepo{DB: tx}, &UserRepo{DB: tx})
		})
	}

	createUser := func(t *testing.T, users *UserRepo, username string) models.User {
		t.Helper()
		user, err := users.CreateUser(t.Context(), repository.CreateUserParams{Username: username, PasswordHash: "hash"})
		require.NoError(t, err, "user should be created ok")
		return user
	}

	minutes := int32(10)

	t.Run("create recipe ok", func(t *testing.T) {
		withTx(t, func(r *RecipeRepo, users *UserRepo) {
			user := createUser(t, users, "cook")

			rec, err := r.CreateRecipe(t.Context(), repository.CreateRecipeParams{
				Title:             "Soup",
				Instructions:      "Boil water",
				MinutesToComplete: &minutes,
				UserID:            user.ID,
			})

			require.NoError(t, err)
			assert.Greater(t, rec.ID, int64(0), "ID should be generated")
			assert.Equal(t, "Soup", rec.Title)
			assert.Equal(t, "Boil water", rec.Instructions)
			assert.Equal(t, &minutes, rec.MinutesToComplete)
			assert.Equal(t, user.ID, rec.UserID)
			assert.WithinDuration(t, time.Now(), rec.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create recipe without minutes", func(t *testing.T) {
		withTx(t, func(r *RecipeRepo, users *UserRepo) {
			user := createUser(t, users, "cook")

			rec, err := r.CreateRecipe(t.Context(), repository.CreateRecipeParams{
				Title:        "Toast",
				Instructions: "Toast bread",
				UserID:       user.ID,
			})

			require.NoError(t, err)
			assert.Nil(t, rec.MinutesToComplete, "minutes should stay NULL")
		})
	})

	t.Run("create recipe for unknown user fails", func(t *testing.T) {
		withTx(t, func(r *RecipeRepo, _ *UserRepo) {
			_, err := r.CreateRecipe(t.Context(), repository.CreateRecipeParams{
				Title:        "Orphan",
				Instructions: "Should not exist",
				UserID:       99999,
			})

			require.Error(t, err, "FK violation must be reported")

			var conflict *apperrors.ConflictError
			require.ErrorAs(t, err, &conflict, "integrity violations must be ConflictError")
			assert.NotEmpty(t, conflict.Reason, "conflict should carry the store message")
			assert.Contains(t, conflict.Reason, "foreign key", "reason should be the database's own text")
		})
	})

	t.Run("list recipes joined with owners", func(t *testing.T) {
		withTx(t, func(r *RecipeRepo, users *UserRepo) {
			alice := createUser(t, users, "alice")
			bob := createUser(t, users, "bob")

			first, err := r.CreateRecipe(t.Context(), repository.CreateRecipeParams{Title: "Soup", Instructions: "Boil water", UserID: alice.ID})
			require.NoError(t, err)
			second, err := r.CreateRecipe(t.Context(), repository.CreateRecipeParams{Title: "Toast", Instructions: "Toast bread", UserID: bob.ID})
			require.NoError(t, err)

			list, err := r.ListRecipes(t.Context())

			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, first.ID, list[0].ID, "listing should be ordered by id")
			assert.Equal(t, second.ID, list[1].ID)
			assert.Equal(t, "alice", list[0].User.Username, "owner should be populated")
			assert.Equal(t, "bob", list[1].User.Username)
		})
	})

	t.Run("list empty", func(t *testing.T) {
		withTx(t, func(r *RecipeRepo, _ *UserRepo) {
			list, err := r.ListRecipes(t.Context())

			require.NoError(t, err)
			assert.Empty(t, list)
		})
	})
}
