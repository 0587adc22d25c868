// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Repository persists checkout sessions
type Repository interface {
	Create(ctx context.Context, c *Checkout) error
	Update(ctx context.Context, c *Checkout) error
	FindByID(ctx context.Context, id uuid.UUID) (*Checkout, error)
}

// ProductLookup fills in item details missing from the request
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// OrderPlacer stores the order created at finalization
type OrderPlacer interface {
	Place(ctx context.Context, o *order.Order) error
}

// CartClearer empties the user's cart once the order exists
type CartClearer interface {
	ClearUser(ctx context.Context, userID uuid.UUID) error
}

// Mailer sends the order confirmation
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationData) error
}

// Recipients resolves where a user's mail goes
type Recipients interface {
	Contact(ctx context.Context, userID uuid.UUID) (name, address string, err error)
}

// Service drives the checkout pipeline
type Service struct {
	repo       Repository
	products   ProductLookup
	orders     OrderPlacer
	carts      CartClearer
	mailer     Mailer
	recipients Recipients
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewService creates a new checkout service. mailer and recipients may be nil.
func NewService(repo Repository, products ProductLookup, orders OrderPlacer, carts CartClearer,
	mailer Mailer, recipients Recipients, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:       repo,
		products:   products,
		orders:     orders,
		carts:      carts,
		mailer:     mailer,
		recipients: recipients,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest represents a new checkout session
type CreateRequest struct {
	CheckoutItems   []order.Item          `json:"checkoutItems"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// PayRequest records the payment provider's verdict
type PayRequest struct {
	PaymentStatus  string          `json:"paymentStatus" binding:"required"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

// Create opens a checkout session for the caller
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Checkout, error) {
	if len(req.CheckoutItems) == 0 {
		return nil, apperror.Validation("no items in checkout")
	}
	if !req.ShippingAddress.Complete() {
		return nil, apperror.Validation("shipping address requires address, city, postalCode and country")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, apperror.Validation("paymentMethod is required")
	}

	items := make([]order.Item, len(req.CheckoutItems))
	total := decimal.Zero
	for i, item := range req.CheckoutItems {
		if item.ProductID == uuid.Nil {
			return nil, apperror.Validation("checkout item %d is missing productId", i+1)
		}
		if item.Quantity <= 0 {
			return nil, apperror.Validation("checkout item %d must have a positive quantity", i+1)
		}
		if item.Price.IsNegative() {
			return nil, apperror.Validation("checkout item %d has a negative price", i+1)
		}
		if item.Category == "" || item.Name == "" {
			p, err := s.products.Get(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if item.Category == "" {
				item.Category = p.Category
			}
			if item.Name == "" {
				item.Name = p.Name
			}
			if item.Image == "" {
				item.Image = p.FirstImage()
			}
		}
		items[i] = item
		total = total.Add(item.Subtotal())
	}

	c := &Checkout{
		ID:              uuid.New(),
		UserID:          userID,
		CheckoutItems:   items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		TotalPrice:      total,
		PaymentStatus:   order.PaymentStatusProcessing,
		IsPaid:          false,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	return c, nil
}

// Get returns a checkout visible to the caller
func (s *Service) Get(ctx context.Context, caller order.Caller, id uuid.UUID) (*Checkout, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin && c.UserID != caller.UserID {
		return nil, apperror.Forbidden("not authorized to access this checkout")
	}
	return c, nil
}

// MarkPaid records a successful payment. Only the "paid" status is accepted.
func (s *Service) MarkPaid(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *PayRequest) (*Checkout, error) {
	c, err := s.Get(ctx, order.Caller{UserID: userID}, id)
	if err != nil {
		return nil, err
	}
	if c.IsFinalized {
		return nil, apperror.Validation("checkout already finalized")
	}
	if order.PaymentStatus(req.PaymentStatus) != order.PaymentStatusPaid {
		return nil, apperror.Validation("invalid payment status")
	}

	now := s.now()
	c.IsPaid = true
	c.PaymentStatus = order.PaymentStatusPaid
	c.PaymentDetails = req.PaymentDetails
	c.PaidAt = &now

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update checkout: %w", err)
	}
	return c, nil
}

// Finalize converts a paid checkout into an order and clears the user's cart.
// Cart or email failures after the order exists are logged, not rolled back.
func (s *Service) Finalize(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*order.Order, error) {
	c, err := s.Get(ctx, order.Caller{UserID: userID}, id)
	if err != nil {
		return nil, err
	}
	if c.IsFinalized {
		return nil, apperror.Validation("checkout already finalized")
	}
	if !c.IsPaid {
		return nil, apperror.Validation("checkout is not paid")
	}

	o := c.ToOrder()
	if err := s.orders.Place(ctx, o); err != nil {
		return nil, err
	}

	now := s.now()
	c.IsFinalized = true
	c.FinalizedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to finalize checkout: %w", err)
	}
	metrics.OrdersFinalized.Inc()

	log := s.logger.WithFields(logrus.Fields{
		"checkout_id": c.ID,
		"order_id":    o.ID,
		"user_id":     userID,
	})
	if err := s.carts.ClearUser(ctx, userID); err != nil {
		log.WithError(err).Warn("failed to clear cart after order finalization")
	}
	s.sendConfirmation(ctx, log, o)

	return o, nil
}

func (s *Service) sendConfirmation(ctx context.Context, log logrus.FieldLogger, o *order.Order) {
	if s.mailer == nil || s.recipients == nil {
		return
	}
	name, address, err := s.recipients.Contact(ctx, o.UserID)
	if err != nil {
		log.WithError(err).Warn("failed to resolve order confirmation recipient")
		return
	}

	items := make([]email.OrderItem, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = email.OrderItem{
			Name:     item.Name,
			Size:     item.Size,
			Color:    item.Color,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
			Total:    item.Subtotal().StringFixed(2),
		}
	}

	data := email.OrderConfirmationData{
		EmailTemplateData: email.EmailTemplateData{UserName: name, UserEmail: address},
		OrderNumber:       o.Number(),
		OrderDate:         s.now().Format("January 2, 2006"),
		OrderTotal:        o.TotalPrice.StringFixed(2),
		PaymentMethod:     o.PaymentMethod,
		Items:             items,
		ShippingAddress: email.Address{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
	}
	if err := s.mailer.SendOrderConfirmation(ctx, data); err != nil {
		log.WithError(err).Warn("failed to send order confirmation")
	}
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*Checkout, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("checkout not found")
		}
		return nil, fmt.Errorf("failed to retrieve checkout: %w", err)
	}
	return c, nil
}
