package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Subscribers is an in-process subscriber.Repository keyed by email
type Subscribers struct {
	mu      sync.RWMutex
	byEmail map[string]subscriber.Subscriber
}

var _ subscriber.Repository = (*Subscribers)(nil)

func NewSubscribers() *Subscribers {
	return &Subscribers{byEmail: make(map[string]subscriber.Subscriber)}
}

func (m *Subscribers) Create(_ context.Context, s *subscriber.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[s.Email]; ok {
		return apperror.ErrDuplicate
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.byEmail[s.Email] = *s
	return nil
}

func (m *Subscribers) FindByEmail(_ context.Context, email string) (*subscriber.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byEmail[email]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	return &s, nil
}
