package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppetukhova/recipebox/internal/apperrors"
	"github.com/ppetukhova/recipebox/internal/models"
	"github.com/ppetukhova/recipebox/internal/repository"
)

// Auth service
// Owns everything credential related: hashing passwords at signup and
// verifying them at login. Session handling lives in internal/session.
type AuthService struct {
	hasher   PasswordHasher
	userRepo repository.UserRepo
}

func NewService(hasher PasswordHasher, userRepo repository.UserRepo) *AuthService {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &AuthService{
		hasher:   hasher,
		userRepo: userRepo,
	}
}

type SignupParams struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// Signup creates a user with a derived password hash.
// Uniqueness is left to the store: no pre-check, the unique constraint is
// the single source of truth, so concurrent signups are race safe.
func (s *AuthService) Signup(ctx context.Context, arg SignupParams) (models.User, error) {
	hash, err := s.hasher.Hash(arg.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	return s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		Username:     arg.Username,
		PasswordHash: hash,
		ImageURL:     arg.ImageURL,
		Bio:          arg.Bio,
	})
}

// Login returns apperrors.ErrInvalidCredentials for unknown usernames and
// wrong passwords alike, so callers can't enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, apperrors.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads a user by id, e.g. to resolve a session to its owner.
func (s *AuthService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}
