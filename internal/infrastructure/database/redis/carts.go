// internal/infrastructure/database/redis/carts.go
package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// Carts routes guest carts to Redis and user carts to the primary store
type Carts struct {
	primary cart.Repository
	guests  *GuestCarts
}

var _ cart.Repository = (*Carts)(nil)

// NewCarts combines the primary repository with the guest store
func NewCarts(primary cart.Repository, guests *GuestCarts) *Carts {
	return &Carts{primary: primary, guests: guests}
}

func (r *Carts) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return r.primary.FindByUser(ctx, userID)
}

func (r *Carts) FindByGuest(ctx context.Context, guestID string) (*cart.Cart, error) {
	return r.guests.Find(ctx, guestID)
}

// Save sends a cart that gained a user to the primary store
func (r *Carts) Save(ctx context.Context, c *cart.Cart) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.UserID != nil {
		return r.primary.Save(ctx, c)
	}
	return r.guests.Save(ctx, c)
}

func (r *Carts) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.primary.DeleteByUser(ctx, userID)
}

func (r *Carts) DeleteByGuest(ctx context.Context, guestID string) error {
	return r.guests.Delete(ctx, guestID)
}
