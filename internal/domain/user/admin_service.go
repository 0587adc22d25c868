// internal/domain/user/admin_service.go
package user

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/validation"
)

// CreateRequest represents admin user creation data
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role"`
}

// UpdateRequest represents a partial user update. Password is rehashed
// only when present.
type UpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *Role   `json:"role"`
	Password *string `json:"password"`
}

// List returns every user, newest first
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// Create adds a user with the requested role, customer by default
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	role := req.Role
	if role == "" {
		role = RoleCustomer
	}
	return s.create(ctx, req.Name, req.Email, req.Password, role)
}

// Update applies an admin edit to a user
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*User, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		u.Name = name
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if !validation.Email(email) {
			return nil, apperror.Validation("invalid email format")
		}
		if email != u.Email {
			if err := s.ensureEmailFree(ctx, email, u.ID); err != nil {
				return nil, err
			}
			u.Email = email
		}
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperror.Validation("role must be customer or admin")
		}
		u.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		if s.passwordManager.VerifyPassword(*req.Password, u.Password) != nil {
			hash, err := s.hash(*req.Password)
			if err != nil {
				return nil, err
			}
			u.Password = hash
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// Delete removes a user. Administrators cannot delete themselves.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperror.Validation("cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NotFound("user not found")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
