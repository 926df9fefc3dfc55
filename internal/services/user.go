// Package services contains the application business logic between the HTTP
// handlers and the repositories
package services

import (
	"context"

	"github.com/studyhub-dev/studyhub/internal/db/models"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
)

// User handles user-related operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(repo *repos.UserRepository) *User {
	return &User{
		repo: repo,
	}
}

// CreateUser creates a new user and returns its ID
func (s *User) CreateUser(ctx context.Context, user *models.User) (uint, error) {
	return s.repo.CreateUser(ctx, user)
}

// GetUserByID retrieves a user by ID
func (s *User) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (s *User) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// GetUsers retrieves all users with pagination
func (s *User) GetUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetUsers(ctx, opts)
}

// DeleteUser deletes a user by ID
func (s *User) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.DeleteUser(ctx, id)
}
