package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/history"
)

// History is an in-process history.Repository
type History struct {
	mu    sync.RWMutex
	views []history.View
}

var _ history.Repository = (*History)(nil)

func NewHistory() *History {
	return &History{}
}

func (m *History) Create(_ context.Context, v *history.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now().UTC()
	}
	m.views = append(m.views, *v)
	return nil
}

func (m *History) FindByUser(_ context.Context, userID uuid.UUID) ([]history.View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []history.View{}
	for _, v := range m.views {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}
