package services

import (
	"context"
	"errors"
	"strings"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, loanRepo repositories.LoanRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	user := &models.User{
		Email: email,
		Name:  input.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit
	return s.userRepo.List(ctx, offset, limit)
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	Name *string `json:"name,omitempty"`
}

// Update updates a user
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// GetLoans gets a user's loan history
func (s *UserService) GetLoans(ctx context.Context, id uint) ([]*models.Loan, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.loanRepo.ListByUser(ctx, id)
}
