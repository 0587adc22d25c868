// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/validation"
)

const maxNameLength = 50

// Repository persists users
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
}

// Service handles user business logic
type Service struct {
	repo            Repository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:            repo,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User *User `json:"user"`
	auth.TokenPair
}

// Register creates a new customer account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	u, err := s.create(ctx, req.Name, req.Email, req.Password, RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	return s.issue(u)
}

// Refresh exchanges a refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}
	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return s.issue(u)
}

// Profile gets user profile by ID
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.find(ctx, id)
}

// Contact returns the display name and email of a user
func (s *Service) Contact(ctx context.Context, id uuid.UUID) (string, string, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return "", "", err
	}
	return u.Name, u.Email, nil
}

func (s *Service) issue(u *User) (*AuthResponse, error) {
	pair, err := s.jwtManager.GeneratePair(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperror.Internal("failed to issue tokens", err)
	}
	return &AuthResponse{User: u, TokenPair: *pair}, nil
}

func (s *Service) create(ctx context.Context, name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	if !validation.Email(email) {
		return nil, apperror.Validation("invalid email format")
	}
	if !role.Valid() {
		return nil, apperror.Validation("role must be customer or admin")
	}
	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := &User{ID: uuid.New(), Name: name, Email: email, Password: hash, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *Service) hash(password string) (string, error) {
	if err := s.passwordManager.ValidatePassword(password); err != nil {
		return "", apperror.Validation("%s", err.Error())
	}
	hash, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return "", apperror.Internal("failed to hash password", err)
	}
	return hash, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != self {
		return apperror.Conflict("user with this email already exists")
	}
	return nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return u, nil
}

func validateName(name string) error {
	if name == "" {
		return apperror.Validation("name is required")
	}
	if len(name) > maxNameLength {
		return apperror.Validation("name must be at most %d characters", maxNameLength)
	}
	return nil
}
