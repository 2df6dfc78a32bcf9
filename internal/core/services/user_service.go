package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/password"
)

// User service errors
var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrOldPasswordWrong     = errors.New("old password is incorrect")
	ErrCannotChangeOwnRole  = errors.New("cannot change your own role")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

// UserService handles user management business logic
type UserService struct {
	userRepo UserRepository
	hashCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo, hashCost: password.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Role   *domain.Role
	Offset int
	Limit  int
}

// CreateUserInput is an admin-created account of any role
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ListUsers lists users, optionally of one role
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) ([]*domain.User, int64, error) {
	return s.userRepo.List(ctx, domain.UserFilter{Role: input.Role, Offset: input.Offset, Limit: input.Limit})
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser creates an account with the given role
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	email := normalizeEmail(input.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.HashWithCost(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    email,
		Name:     strings.TrimSpace(input.Name),
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.L().Info("👤 User created", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// UpdateUserByAdmin updates a user by admin
func (s *UserService) UpdateUserByAdmin(ctx context.Context, id uint, adminID uint, input *UpdateUserByAdminInput) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if id == adminID && input.Role != nil {
		return nil, ErrCannotChangeOwnRole
	}
	if id == adminID && input.IsActive != nil && !*input.IsActive {
		return nil, ErrCannotDeactivateSelf
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		role, err := domain.ParseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword changes user's password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.HashWithCost(input.NewPassword, s.hashCost)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}
