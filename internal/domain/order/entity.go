// internal/domain/order/entity.go
package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the delivery status of an order
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every delivery status in lifecycle order
var Statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// ParseStatus matches s case-insensitively against the known statuses
func ParseStatus(s string) (Status, bool) {
	for _, status := range Statuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

// PaymentStatus represents payment status of a checkout or order
type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
)

// Item is an ordered line. Values are copied at checkout time.
type Item struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category,omitempty"`
}

// Subtotal is price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is where an order is delivered
type ShippingAddress struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// Complete reports whether every address field is filled in
func (a ShippingAddress) Complete() bool {
	return strings.TrimSpace(a.Address) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// Order is produced by finalizing a paid checkout. Only the delivery
// fields change afterwards.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user"`
	CheckoutID      *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"checkoutId,omitempty"`
	OrderItems      []Item          `gorm:"type:jsonb;serializer:json;not null" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"type:jsonb;serializer:json;not null" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"paymentMethod"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null" json:"paymentStatus"`
	PaymentDetails  json.RawMessage `gorm:"type:jsonb;serializer:json" json:"paymentDetails,omitempty"`
	Status          Status          `gorm:"size:20;not null;index" json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// Number is the short human readable order reference
func (o *Order) Number() string {
	return "ORD-" + strings.ToUpper(o.ID.String()[:8])
}

// ApplyStatus sets the delivery status. Delivered also marks the order
// delivered and stamps the time.
func (o *Order) ApplyStatus(status Status, now time.Time) {
	o.Status = status
	if status == StatusDelivered {
		o.IsDelivered = true
		o.DeliveredAt = &now
	}
}
