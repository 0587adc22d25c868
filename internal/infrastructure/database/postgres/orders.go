// internal/infrastructure/database/postgres/orders.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Orders is the gorm order.Repository
type Orders struct {
	db *gorm.DB
}

var _ order.Repository = (*Orders)(nil)

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

func (r *Orders) Create(ctx context.Context, o *order.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *Orders) Update(ctx context.Context, o *order.Order) error {
	return affected(r.db.WithContext(ctx).Model(o).Select("*").Omit("created_at").Updates(o))
}

func (r *Orders) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id))
}

func (r *Orders) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *Orders) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	orders := []order.Order{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&orders).Error
	return orders, translate(err)
}

func (r *Orders) FindAll(ctx context.Context) ([]order.Order, error) {
	orders := []order.Order{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id").Find(&orders).Error
	return orders, translate(err)
}

// Checkouts is the gorm checkout.Repository
type Checkouts struct {
	db *gorm.DB
}

var _ checkout.Repository = (*Checkouts)(nil)

func NewCheckouts(db *gorm.DB) *Checkouts {
	return &Checkouts{db: db}
}

func (r *Checkouts) Create(ctx context.Context, c *checkout.Checkout) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *Checkouts) Update(ctx context.Context, c *checkout.Checkout) error {
	return affected(r.db.WithContext(ctx).Model(c).Select("*").Omit("created_at").Updates(c))
}

func (r *Checkouts) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Checkout, error) {
	var c checkout.Checkout
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}
