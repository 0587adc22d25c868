// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/validation"
)

const (
	newArrivalsLimit = 8
	similarLimit     = 4
)

// Repository persists catalog entries
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Find(ctx context.Context, f Filter) ([]Product, error)
}

// Service handles catalog business logic
type Service struct {
	repo Repository
}

// NewService creates a new product service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description" validate:"required"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPrice   *decimal.Decimal `json:"discountPrice"`
	CountInStock    int              `json:"countInStock" validate:"gte=0"`
	SKU             string           `json:"sku" validate:"required,max=100"`
	Category        string           `json:"category" validate:"required,max=100"`
	Brand           string           `json:"brand" validate:"max=100"`
	Sizes           []string         `json:"sizes"`
	Colors          []string         `json:"colors"`
	Collection      string           `json:"collection" validate:"required,max=100"`
	Material        string           `json:"material" validate:"max=100"`
	Gender          Gender           `json:"gender" validate:"omitempty,oneof=Men Women Unisex"`
	Images          []Image          `json:"images"`
	IsFeatured      bool             `json:"isFeatured"`
	IsPublished     *bool            `json:"isPublished"`
	Tags            []string         `json:"tags"`
	MetaTitle       string           `json:"metaTitle"`
	MetaDescription string           `json:"metaDescription"`
	MetaKeywords    string           `json:"metaKeywords"`
	Dimensions      *Dimensions      `json:"dimensions"`
	Weight          float64          `json:"weight" validate:"gte=0"`
}

// UpdateRequest represents a partial product update
type UpdateRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPrice   *decimal.Decimal `json:"discountPrice"`
	CountInStock    *int             `json:"countInStock"`
	SKU             *string          `json:"sku"`
	Category        *string          `json:"category"`
	Brand           *string          `json:"brand"`
	Sizes           []string         `json:"sizes"`
	Colors          []string         `json:"colors"`
	Collection      *string          `json:"collection"`
	Material        *string          `json:"material"`
	Gender          *Gender          `json:"gender"`
	Images          []Image          `json:"images"`
	IsFeatured      *bool            `json:"isFeatured"`
	IsPublished     *bool            `json:"isPublished"`
	Tags            []string         `json:"tags"`
	MetaTitle       *string          `json:"metaTitle"`
	MetaDescription *string          `json:"metaDescription"`
	MetaKeywords    *string          `json:"metaKeywords"`
	Dimensions      *Dimensions      `json:"dimensions"`
	Weight          *float64         `json:"weight"`
}

// List runs a public catalog query; unpublished products are never returned
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	f.PublishedOnly = true
	products, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// AdminList returns every product, newest first
func (s *Service) AdminList(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Find(ctx, Filter{Sort: SortNewest})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return p, nil
}

// GetMany resolves ids into products, silently skipping ids that no longer exist
func (s *Service) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error) {
	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	out := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// BestSeller returns the highest rated published product
func (s *Service) BestSeller(ctx context.Context) (*Product, error) {
	products, err := s.List(ctx, Filter{Sort: SortPopularity, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no best seller found")
	}
	return &products[0], nil
}

// NewArrivals returns the most recently created published products
func (s *Service) NewArrivals(ctx context.Context) ([]Product, error) {
	return s.List(ctx, Filter{Sort: SortNewest, Limit: newArrivalsLimit})
}

// Similar returns products sharing gender and category with the given one
func (s *Service) Similar(ctx context.Context, id uuid.UUID) ([]Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, Filter{
		Gender:    p.Gender,
		Category:  p.Category,
		ExcludeID: &p.ID,
		Limit:     similarLimit,
	})
}

// Create creates a new product owned by the creating administrator
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateRequest) (*Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	if err := validatePrices(req.Price, req.DiscountPrice); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if err := s.ensureSKUFree(ctx, sku, uuid.Nil); err != nil {
		return nil, err
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	p := &Product{
		ID:              uuid.New(),
		SKU:             sku,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		CountInStock:    req.CountInStock,
		Category:        strings.TrimSpace(req.Category),
		Brand:           strings.TrimSpace(req.Brand),
		Sizes:           pq.StringArray(req.Sizes),
		Colors:          pq.StringArray(req.Colors),
		Collection:      strings.TrimSpace(req.Collection),
		Material:        strings.TrimSpace(req.Material),
		Gender:          req.Gender,
		Images:          req.Images,
		IsFeatured:      req.IsFeatured,
		IsPublished:     published,
		Tags:            pq.StringArray(req.Tags),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		Dimensions:      req.Dimensions,
		Weight:          req.Weight,
	}
	if creatorID != uuid.Nil {
		p.UserID = &creatorID
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("product with SKU %s already exists", sku)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// Update applies a partial update to an existing product
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.Validation("name must not be empty")
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		p.DiscountPrice = req.DiscountPrice
	}
	if req.CountInStock != nil {
		if *req.CountInStock < 0 {
			return nil, apperror.Validation("countInStock must not be negative")
		}
		p.CountInStock = *req.CountInStock
	}
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			return nil, apperror.Validation("sku must not be empty")
		}
		if sku != p.SKU {
			if err := s.ensureSKUFree(ctx, sku, p.ID); err != nil {
				return nil, err
			}
		}
		p.SKU = sku
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Brand != nil {
		p.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Sizes != nil {
		p.Sizes = pq.StringArray(req.Sizes)
	}
	if req.Colors != nil {
		p.Colors = pq.StringArray(req.Colors)
	}
	if req.Collection != nil {
		p.Collection = strings.TrimSpace(*req.Collection)
	}
	if req.Material != nil {
		p.Material = strings.TrimSpace(*req.Material)
	}
	if req.Gender != nil {
		if *req.Gender != "" && !req.Gender.Valid() {
			return nil, apperror.Validation("gender must be one of: Men, Women, Unisex")
		}
		p.Gender = *req.Gender
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	if req.Tags != nil {
		p.Tags = pq.StringArray(req.Tags)
	}
	if req.MetaTitle != nil {
		p.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		p.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		p.MetaKeywords = *req.MetaKeywords
	}
	if req.Dimensions != nil {
		p.Dimensions = req.Dimensions
	}
	if req.Weight != nil {
		p.Weight = *req.Weight
	}

	if p.Category == "" || p.Collection == "" {
		return nil, apperror.Validation("category and collection are required")
	}
	if err := validatePrices(p.Price, p.DiscountPrice); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("product with SKU %s already exists", p.SKU)
		}
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NotFound("product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *Service) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.repo.FindBySKU(ctx, sku)
	switch {
	case err == nil && existing.ID != self:
		return apperror.Conflict("product with SKU %s already exists", sku)
	case err != nil && !apperror.IsNotFound(err):
		return fmt.Errorf("failed to check sku: %w", err)
	}
	return nil
}

func validatePrices(price decimal.Decimal, discount *decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	if discount != nil && discount.IsNegative() {
		return apperror.Validation("discountPrice must not be negative")
	}
	return nil
}
