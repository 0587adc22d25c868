// internal/infrastructure/database/postgres/carts.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// Carts is the gorm cart.Repository
type Carts struct {
	db *gorm.DB
}

var _ cart.Repository = (*Carts)(nil)

func NewCarts(db *gorm.DB) *Carts {
	return &Carts{db: db}
}

func (r *Carts) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *Carts) FindByGuest(ctx context.Context, guestID string) (*cart.Cart, error) {
	var c cart.Cart
	err := r.db.WithContext(ctx).
		Where("guest_id = ? AND user_id IS NULL", guestID).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Save upserts on the primary key
func (r *Carts) Save(ctx context.Context, c *cart.Cart) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *Carts) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cart.Cart{}))
}

func (r *Carts) DeleteByGuest(ctx context.Context, guestID string) error {
	return affected(r.db.WithContext(ctx).
		Where("guest_id = ? AND user_id IS NULL", guestID).
		Delete(&cart.Cart{}))
}
