// internal/domain/cart/entity.go
package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

const maxGuestIDLength = 100

// Item is a cart line. Name, image and price are copied from the product
// when the line is created and are not refreshed afterwards.
type Item struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Cart is owned by either a user or a guest, never both
type Cart struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user,omitempty"`
	GuestID    string          `gorm:"size:100;index" json:"guestId,omitempty"`
	Products   []Item          `gorm:"type:jsonb;serializer:json;not null" json:"products"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// Recalculate recomputes TotalPrice from the current lines
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Products {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.TotalPrice = total
}

// IndexOf returns the position of the line matching the triple, or -1
func (c *Cart) IndexOf(productID uuid.UUID, size, color string) int {
	for i, item := range c.Products {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return i
		}
	}
	return -1
}

// IsGuest reports whether the cart is owned by a guest identifier
func (c *Cart) IsGuest() bool {
	return c.UserID == nil && c.GuestID != ""
}

// Identity names the owner of a cart. When both are set the user wins.
type Identity struct {
	UserID  *uuid.UUID
	GuestID string
}

// Resolve returns the identity that will be used, rejecting an empty one
func (id Identity) Resolve() (Identity, error) {
	if id.UserID != nil && *id.UserID != uuid.Nil {
		return Identity{UserID: id.UserID}, nil
	}
	guest := strings.TrimSpace(id.GuestID)
	if guest == "" {
		return Identity{}, apperror.Validation("either a user or a guestId is required")
	}
	if len(guest) > maxGuestIDLength {
		return Identity{}, apperror.Validation("guestId is too long")
	}
	return Identity{GuestID: guest}, nil
}

// Owns stamps the identity onto a new cart
func (id Identity) Owns(c *Cart) {
	if id.UserID != nil {
		uid := *id.UserID
		c.UserID = &uid
		c.GuestID = ""
		return
	}
	c.UserID = nil
	c.GuestID = id.GuestID
}
