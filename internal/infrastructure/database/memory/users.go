package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Users is an in-process user.Repository
type Users struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]user.User
}

var _ user.Repository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{byID: make(map[uuid.UUID]user.User)}
}

func (m *Users) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = user.NormalizeEmail(u.Email)
	for _, existing := range m.byID {
		if existing.ID == u.ID || existing.Email == u.Email {
			return apperror.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	m.byID[u.ID] = *u
	return nil
}

func (m *Users) Update(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[u.ID]; !ok {
		return apperror.ErrRecordNotFound
	}
	u.Email = user.NormalizeEmail(u.Email)
	for id, existing := range m.byID {
		if id != u.ID && existing.Email == u.Email {
			return apperror.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now().UTC()
	m.byID[u.ID] = *u
	return nil
}

func (m *Users) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *Users) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	return &u, nil
}

func (m *Users) FindByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func (m *Users) FindAll(_ context.Context) ([]user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]user.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}
