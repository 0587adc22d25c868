package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Products is an in-process product.Repository
type Products struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]product.Product
	order []uuid.UUID
}

var _ product.Repository = (*Products)(nil)

func NewProducts() *Products {
	return &Products{byID: make(map[uuid.UUID]product.Product)}
}

func (m *Products) Create(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, ok := m.byID[p.ID]; ok {
		return apperror.ErrDuplicate
	}
	for _, existing := range m.byID {
		if existing.SKU == p.SKU {
			return apperror.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.byID[p.ID] = cloneProduct(*p)
	m.order = append(m.order, p.ID)
	return nil
}

func (m *Products) Update(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[p.ID]; !ok {
		return apperror.ErrRecordNotFound
	}
	for id, existing := range m.byID {
		if id != p.ID && existing.SKU == p.SKU {
			return apperror.ErrDuplicate
		}
	}
	p.UpdatedAt = time.Now().UTC()
	m.byID[p.ID] = cloneProduct(*p)
	return nil
}

func (m *Products) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Products) FindByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (m *Products) FindBySKU(_ context.Context, sku string) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.byID {
		if p.SKU == sku {
			out := cloneProduct(p)
			return &out, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func (m *Products) FindByIDs(_ context.Context, ids []uuid.UUID) ([]product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]product.Product, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := m.byID[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

// Find evaluates the filter over insertion order, which stands in for natural order
func (m *Products) Find(_ context.Context, f product.Filter) ([]product.Product, error) {
	m.mu.RLock()
	all := make([]product.Product, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, cloneProduct(m.byID[id]))
	}
	m.mu.RUnlock()

	return f.Apply(all), nil
}

func cloneProduct(p product.Product) product.Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Colors = append([]string(nil), p.Colors...)
	p.Tags = append([]string(nil), p.Tags...)
	p.Images = append([]product.Image(nil), p.Images...)
	if p.DiscountPrice != nil {
		d := *p.DiscountPrice
		p.DiscountPrice = &d
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		p.Dimensions = &d
	}
	if p.UserID != nil {
		id := *p.UserID
		p.UserID = &id
	}
	return p
}
