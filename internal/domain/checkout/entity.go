// internal/domain/checkout/entity.go
package checkout

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Checkout is the draft of an order. It moves one way through
// created, paid and finalized; a finalized checkout never changes again.
type Checkout struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"user"`
	CheckoutItems   []order.Item          `gorm:"type:jsonb;serializer:json;not null" json:"checkoutItems"`
	ShippingAddress order.ShippingAddress `gorm:"type:jsonb;serializer:json;not null" json:"shippingAddress"`
	PaymentMethod   string                `gorm:"size:50;not null" json:"paymentMethod"`
	TotalPrice      decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
	PaymentStatus   order.PaymentStatus   `gorm:"size:20;not null" json:"paymentStatus"`
	IsPaid          bool                  `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time            `json:"paidAt,omitempty"`
	PaymentDetails  json.RawMessage       `gorm:"type:jsonb;serializer:json" json:"paymentDetails,omitempty"`
	IsFinalized     bool                  `gorm:"not null;default:false" json:"isFinalized"`
	FinalizedAt     *time.Time            `json:"finalizedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// TableName overrides the table name
func (Checkout) TableName() string {
	return "checkouts"
}

// ToOrder copies the checkout into a new order in Processing state
func (c *Checkout) ToOrder() *order.Order {
	checkoutID := c.ID
	return &order.Order{
		ID:              uuid.New(),
		UserID:          c.UserID,
		CheckoutID:      &checkoutID,
		OrderItems:      append([]order.Item(nil), c.CheckoutItems...),
		ShippingAddress: c.ShippingAddress,
		PaymentMethod:   c.PaymentMethod,
		TotalPrice:      c.TotalPrice,
		IsPaid:          true,
		PaidAt:          c.PaidAt,
		IsDelivered:     false,
		PaymentStatus:   order.PaymentStatusPaid,
		PaymentDetails:  c.PaymentDetails,
		Status:          order.StatusProcessing,
	}
}
