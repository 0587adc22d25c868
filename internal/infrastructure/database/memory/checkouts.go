package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Checkouts is an in-process checkout.Repository
type Checkouts struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]checkout.Checkout
}

var _ checkout.Repository = (*Checkouts)(nil)

func NewCheckouts() *Checkouts {
	return &Checkouts{byID: make(map[uuid.UUID]checkout.Checkout)}
}

func (m *Checkouts) Create(_ context.Context, c *checkout.Checkout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, ok := m.byID[c.ID]; ok {
		return apperror.ErrDuplicate
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.byID[c.ID] = cloneCheckout(*c)
	return nil
}

func (m *Checkouts) Update(_ context.Context, c *checkout.Checkout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[c.ID]; !ok {
		return apperror.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	m.byID[c.ID] = cloneCheckout(*c)
	return nil
}

func (m *Checkouts) FindByID(_ context.Context, id uuid.UUID) (*checkout.Checkout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	out := cloneCheckout(c)
	return &out, nil
}

func cloneCheckout(c checkout.Checkout) checkout.Checkout {
	c.CheckoutItems = append([]order.Item(nil), c.CheckoutItems...)
	c.PaymentDetails = append(json.RawMessage(nil), c.PaymentDetails...)
	return c
}
