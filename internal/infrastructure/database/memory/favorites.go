package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Favorites is an in-process favorite.Repository
type Favorites struct {
	mu    sync.RWMutex
	items []favorite.Favorite
}

var _ favorite.Repository = (*Favorites)(nil)

func NewFavorites() *Favorites {
	return &Favorites{}
}

func (m *Favorites) Create(_ context.Context, f *favorite.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	for _, existing := range m.items {
		if existing.ID == f.ID || (existing.UserID == f.UserID && existing.ProductID == f.ProductID) {
			return apperror.ErrDuplicate
		}
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	m.items = append(m.items, *f)
	return nil
}

func (m *Favorites) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.items {
		if f.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperror.ErrRecordNotFound
}

func (m *Favorites) FindByID(_ context.Context, id uuid.UUID) (*favorite.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.items {
		if f.ID == id {
			out := f
			return &out, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func (m *Favorites) FindByUser(_ context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []favorite.Favorite{}
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *Favorites) Exists(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.items {
		if f.UserID == userID && f.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
