package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
	"github.com/dsmirnova/task-tracker/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrUserNotModified covers both a missing user and an update that
	// changed nothing; the store reports them identically.
	ErrUserNotModified = fmt.Errorf("%w or nothing changed", ErrUserNotFound)
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser creates a new user
func (s *UserService) CreateUser(ctx context.Context, input dto.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Username: input.Username,
		FullName: input.FullName,
		Role:     input.Role,
		Email:    input.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUser replaces all user fields
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, input dto.CreateUserRequest) (*models.User, error) {
	fields := bson.M{
		"username":  input.Username,
		"full_name": input.FullName,
		"role":      input.Role,
		"email":     input.Email,
	}

	modified, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if modified == 0 {
		return nil, ErrUserNotModified
	}

	return s.userRepo.FindByID(ctx, id)
}

// DeleteUser deletes a user. Tasks referencing the user are left alone;
// their views fall back to the "Unknown" placeholder.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}
