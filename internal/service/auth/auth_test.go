package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/repository"
)

// In-memory user repo, enough to exercise the service logic
type memUserRepo struct {
	nextID int64
	users  map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, arg repository.CreateUserParams) (models.User, error) {
	if _, ok := r.users[arg.Username]; ok {
		return models.User{}, apperrors.ErrUsernameTaken
	}

	r.nextID++
	u := models.User{
		ID:           r.nextID,
		CreatedAt:    time.Now(),
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		ImageURL:     arg.ImageURL,
		Bio:          arg.Bio,
	}
	r.users[arg.Username] = u
	return u, nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id int64) (models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrUserNotFound
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return u, nil
}

func TestAuthService(t *testing.T) {
	bio := "I like soup"

	t.Run("Signup", func(t *testing.T) {
		t.Run("signup ok", func(t *testing.T) {
			s := NewService(nil, newMemUserRepo())

			user, err := s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "password123", Bio: &bio})

			require.NoError(t, err, "creating new user should be ok")
			require.NotEmpty(t, user.ID, "user ID should not be empty")
			require.Equal(t, "test-user", user.Username)
			require.NotEmpty(t, user.PasswordHash, "password hash should not be empty")
			require.NotEqual(t, "password123", user.PasswordHash, "password should be hashed")
			require.NoError(t, DefaultHasher.Compare(user.PasswordHash, "password123"), "stored hash should verify the raw password")
			require.Nil(t, user.ImageURL, "image url stays unset when not provided")
			require.Equal(t, &bio, user.Bio)
		})

		t.Run("signup duplicate fails", func(t *testing.T) {
			s := NewService(nil, newMemUserRepo())

			_, err := s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "password123"})
			require.NoError(t, err, "first signup should succeed")

			_, err = s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "different"})

			require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("login ok", func(t *testing.T) {
			s := NewService(nil, newMemUserRepo())

			created, err := s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "password123"})
			require.NoError(t, err)

			user, err := s.Login(t.Context(), "test-user", "password123")

			require.NoError(t, err)
			require.Equal(t, created.ID, user.ID)
		})

		t.Run("wrong password fails", func(t *testing.T) {
			s := NewService(nil, newMemUserRepo())

			_, err := s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "password123"})
			require.NoError(t, err)

			_, err = s.Login(t.Context(), "test-user", "wrong")

			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})

		t.Run("unknown username fails the same way", func(t *testing.T) {
			s := NewService(nil, newMemUserRepo())

			_, err := s.Login(t.Context(), "who-is-this", "password123")

			// Same error as a wrong password, no username enumeration
			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	})

	t.Run("GetUser", func(t *testing.T) {
		s := NewService(nil, newMemUserRepo())

		created, err := s.Signup(t.Context(), SignupParams{Username: "test-user", Password: "password123"})
		require.NoError(t, err)

		user, err := s.GetUser(t.Context(), created.ID)
		require.NoError(t, err)
		require.Equal(t, created.Username, user.Username)

		_, err = s.GetUser(t.Context(), 99999)
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
