package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Orders is an in-process order.Repository
type Orders struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]order.Order
}

var _ order.Repository = (*Orders)(nil)

func NewOrders() *Orders {
	return &Orders{byID: make(map[uuid.UUID]order.Order)}
}

func (m *Orders) Create(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if _, ok := m.byID[o.ID]; ok {
		return apperror.ErrDuplicate
	}
	if o.CheckoutID != nil {
		for _, existing := range m.byID {
			if existing.CheckoutID != nil && *existing.CheckoutID == *o.CheckoutID {
				return apperror.ErrDuplicate
			}
		}
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	m.byID[o.ID] = cloneOrder(*o)
	return nil
}

func (m *Orders) Update(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[o.ID]; !ok {
		return apperror.ErrRecordNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	m.byID[o.ID] = cloneOrder(*o)
	return nil
}

func (m *Orders) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *Orders) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (m *Orders) FindByUser(_ context.Context, userID uuid.UUID) ([]order.Order, error) {
	return m.list(func(o *order.Order) bool { return o.UserID == userID }), nil
}

func (m *Orders) FindAll(_ context.Context) ([]order.Order, error) {
	return m.list(func(*order.Order) bool { return true }), nil
}

func (m *Orders) list(match func(*order.Order) bool) []order.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]order.Order, 0)
	for _, o := range m.byID {
		if match(&o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func cloneOrder(o order.Order) order.Order {
	o.OrderItems = append([]order.Item(nil), o.OrderItems...)
	o.PaymentDetails = append(json.RawMessage(nil), o.PaymentDetails...)
	if o.CheckoutID != nil {
		id := *o.CheckoutID
		o.CheckoutID = &id
	}
	return o
}
