package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Carts is an in-process cart.Repository holding user and guest carts alike
type Carts struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]cart.Cart
}

var _ cart.Repository = (*Carts)(nil)

func NewCarts() *Carts {
	return &Carts{byID: make(map[uuid.UUID]cart.Cart)}
}

func (m *Carts) FindByUser(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return m.findBy(func(c *cart.Cart) bool { return c.UserID != nil && *c.UserID == userID })
}

func (m *Carts) FindByGuest(_ context.Context, guestID string) (*cart.Cart, error) {
	return m.findBy(func(c *cart.Cart) bool { return c.UserID == nil && c.GuestID == guestID })
}

func (m *Carts) Save(_ context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	m.byID[c.ID] = cloneCart(*c)
	return nil
}

func (m *Carts) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	return m.deleteBy(func(c *cart.Cart) bool { return c.UserID != nil && *c.UserID == userID })
}

func (m *Carts) DeleteByGuest(_ context.Context, guestID string) error {
	return m.deleteBy(func(c *cart.Cart) bool { return c.UserID == nil && c.GuestID == guestID })
}

func (m *Carts) findBy(match func(*cart.Cart) bool) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.byID {
		if match(&c) {
			out := cloneCart(c)
			return &out, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func (m *Carts) deleteBy(match func(*cart.Cart) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := false
	for id, c := range m.byID {
		if match(&c) {
			delete(m.byID, id)
			deleted = true
		}
	}
	if !deleted {
		return apperror.ErrRecordNotFound
	}
	return nil
}

func cloneCart(c cart.Cart) cart.Cart {
	c.Products = append([]cart.Item{}, c.Products...)
	if c.UserID != nil {
		id := *c.UserID
		c.UserID = &id
	}
	return c
}
