package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/moviweb/internal/domain"
)

// UserService handles listing and creating users.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type newUserInput struct {
	Name string `validate:"required,max=100"`
}

// List returns every user. An empty store yields an empty slice.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByID returns the user or domain.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create validates the name and stores a new user.
func (s *UserService) Create(ctx context.Context, name string) (*domain.User, error) {
	in := newUserInput{Name: strings.TrimSpace(name)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user := &domain.User{Name: in.Name}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
