// internal/domain/favorite/service.go
package favorite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Repository persists favorites. FindByUser returns them in insertion order.
type Repository interface {
	Create(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Favorite, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ProductLookup resolves favorited products
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

// Service handles favorite business logic
type Service struct {
	repo     Repository
	products ProductLookup
}

// NewService creates a new favorite service
func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

// AddRequest represents add to favorites request
type AddRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
}

// Add favorites a product for the user
func (s *Service) Add(ctx context.Context, userID uuid.UUID, req *AddRequest) (*Favorite, error) {
	if _, err := s.products.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("product already favorited")
	}

	f := &Favorite{ID: uuid.New(), UserID: userID, ProductID: req.ProductID}
	if err := s.repo.Create(ctx, f); err != nil {
		// lost a race with a concurrent add
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("product already favorited")
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return f, nil
}

// Remove deletes a favorite owned by the user
func (s *Service) Remove(ctx context.Context, userID, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NotFound("favorite not found")
		}
		return fmt.Errorf("failed to retrieve favorite: %w", err)
	}
	if f.UserID != userID {
		return apperror.Forbidden("not authorized to remove this favorite")
	}
	if err := s.repo.Delete(ctx, id); err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Favorites returns the raw favorites of a user in insertion order
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	favs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve favorites: %w", err)
	}
	return favs, nil
}

// List returns the user's favorites with products populated. Favorites
// whose product has since been deleted are skipped.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	favs, err := s.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(favs))
	for i, f := range favs {
		ids[i] = f.ProductID
	}
	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(favs))
	for _, f := range favs {
		p, ok := products[f.ProductID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Favorite: f, Product: p})
	}
	return entries, nil
}
