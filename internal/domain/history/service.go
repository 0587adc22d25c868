// internal/domain/history/service.go
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Repository persists browsing history. FindByUser returns views oldest first.
type Repository interface {
	Create(ctx context.Context, v *View) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]View, error)
}

// ProductLookup resolves viewed products
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

// Service records and lists product views
type Service struct {
	repo     Repository
	products ProductLookup
	now      func() time.Time
}

// NewService creates a new history service
func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{
		repo:     repo,
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ViewRequest represents a product view event
type ViewRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
}

// ListQuery holds the history listing options
type ListQuery struct {
	Unique bool `form:"unique"`
}

// RecordView appends a view. The same product may be recorded many times.
func (s *Service) RecordView(ctx context.Context, userID uuid.UUID, req *ViewRequest) (*View, error) {
	if _, err := s.products.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}

	v := &View{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: req.ProductID,
		ViewedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	return v, nil
}

// Views returns the raw views of a user, oldest first
func (s *Service) Views(ctx context.Context, userID uuid.UUID) ([]View, error) {
	views, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve history: %w", err)
	}
	return views, nil
}

// List returns the user's history newest first with products populated.
// With unique set only the latest view of each product is kept.
func (s *Service) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Entry, error) {
	views, err := s.Views(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		ids[i] = v.ProductID
	}
	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	entries := make([]Entry, 0, len(views))
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		p, ok := products[v.ProductID]
		if !ok {
			continue
		}
		if q.Unique {
			if seen[v.ProductID] {
				continue
			}
			seen[v.ProductID] = true
		}
		entries = append(entries, Entry{View: v, Product: p})
	}
	return entries, nil
}
