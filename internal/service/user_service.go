package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

type UserService struct {
	users  repository.UserRepository
	tokens TokenStore
}

func NewUserService(users repository.UserRepository, tokens TokenStore) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates a new user with a hashed password. Email is optional.
func (s *UserService) Register(ctx context.Context, username, password, email, role string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", repository.ErrInvalidInput)
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", repository.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating user %q", username)
		return nil, err
	}

	return created, nil
}

// ChangePassword replaces the caller's password after checking the old one.
// The caller identity arrives as an explicit argument, resolved by the API
// boundary from the verified token.
func (s *UserService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password required", repository.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password incorrect", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		logger.Error().Err(err).Msgf("Error updating password for user %d", userID)
		return err
	}

	// Outstanding token is no longer trusted after a password change.
	if err := s.tokens.Delete(ctx, user.Username); err != nil {
		logger.Error().Err(err).Msgf("Error revoking token for user %q", user.Username)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user and cascades to its products and orders.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}
	return nil
}
