// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Repository persists orders. List methods return newest first.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context) ([]Order, error)
}

// InvoiceRenderer turns an order into a printable document
type InvoiceRenderer interface {
	RenderInvoice(o *Order) ([]byte, error)
}

// Caller is the authenticated principal acting on orders
type Caller struct {
	UserID uuid.UUID
	Admin  bool
}

// Service handles order business logic
type Service struct {
	repo     Repository
	invoices InvoiceRenderer
	now      func() time.Time
}

// NewService creates a new order service
func NewService(repo Repository, invoices InvoiceRenderer) *Service {
	return &Service{
		repo:     repo,
		invoices: invoices,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpdateStatusRequest represents an admin delivery status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Place stores a new order produced by checkout
func (s *Service) Place(ctx context.Context, o *Order) error {
	if len(o.OrderItems) == 0 {
		return apperror.Validation("order must contain at least one item")
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusProcessing
	}
	if err := s.repo.Create(ctx, o); err != nil {
		if apperror.IsDuplicate(err) {
			return apperror.Conflict("order already exists for this checkout")
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListMine returns the caller's orders. Administrators may ask for another user's.
func (s *Service) ListMine(ctx context.Context, caller Caller, target *uuid.UUID) ([]Order, error) {
	userID := caller.UserID
	if caller.Admin && target != nil && *target != uuid.Nil {
		userID = *target
	}
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// ListByUser returns every order of a user, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.ListMine(ctx, Caller{UserID: userID}, nil)
}

// Get returns an order visible to the caller
func (s *Service) Get(ctx context.Context, caller Caller, id uuid.UUID) (*Order, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin && o.UserID != caller.UserID {
		return nil, apperror.Forbidden("not authorized to view this order")
	}
	return o, nil
}

// ListAll returns every order for administrators
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the delivery status of an order
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*Order, error) {
	status, ok := ParseStatus(raw)
	if !ok {
		return nil, apperror.Validation("status must be one of: Processing, Shipped, Delivered, Cancelled")
	}

	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	o.ApplyStatus(status, s.now())

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return o, nil
}

// Delete removes an order
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NotFound("order not found")
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// Invoice renders the PDF invoice of an order visible to the caller
func (s *Service) Invoice(ctx context.Context, caller Caller, id uuid.UUID) ([]byte, string, error) {
	o, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.invoices.RenderInvoice(o)
	if err != nil {
		return nil, "", apperror.Internal("failed to render invoice", err)
	}
	return doc, fmt.Sprintf("invoice-%s.pdf", o.Number()), nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return o, nil
}
