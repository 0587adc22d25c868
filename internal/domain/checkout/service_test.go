package checkout_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

type recordingMailer struct {
	sent []email.OrderConfirmationData
}

func (m *recordingMailer) SendOrderConfirmation(_ context.Context, data email.OrderConfirmationData) error {
	m.sent = append(m.sent, data)
	return nil
}

type staticRecipients struct{}

func (staticRecipients) Contact(context.Context, uuid.UUID) (string, string, error) {
	return "Ana", "ana@example.com", nil
}

type failingCarts struct{}

func (failingCarts) ClearUser(context.Context, uuid.UUID) error {
	return errors.New("store unavailable")
}

type fixture struct {
	svc     *checkout.Service
	orders  *order.Service
	carts   *cart.Service
	mailer  *recordingMailer
	hook    *test.Hook
	product product.Product
	user    uuid.UUID
}

func newFixture(t *testing.T, clearer checkout.CartClearer) *fixture {
	t.Helper()
	products := memory.NewProducts()
	catalog := product.NewService(products)
	logger, hook := test.NewNullLogger()
	orders := order.NewService(memory.NewOrders(), nil)
	carts := cart.NewService(memory.NewCarts(), catalog, logger)
	if clearer == nil {
		clearer = carts
	}
	mailer := &recordingMailer{}

	p := product.Product{
		ID: uuid.New(), SKU: "TEE-1", Name: "Slim Tee", Price: decimal.RequireFromString("15"),
		Category: "Top Wear", Collection: "Casual Wear", IsPublished: true,
	}
	require.NoError(t, products.Create(context.Background(), &p))

	return &fixture{
		svc:     checkout.NewService(memory.NewCheckouts(), catalog, orders, clearer, mailer, staticRecipients{}, logger),
		orders:  orders,
		carts:   carts,
		mailer:  mailer,
		hook:    hook,
		product: p,
		user:    uuid.New(),
	}
}

func (f *fixture) request() *checkout.CreateRequest {
	return &checkout.CreateRequest{
		CheckoutItems: []order.Item{
			{ProductID: f.product.ID, Name: "Slim Tee", Price: decimal.RequireFromString("15"), Quantity: 2, Size: "M", Color: "Red"},
			{ProductID: f.product.ID, Name: "Slim Tee", Price: decimal.RequireFromString("15"), Quantity: 1, Size: "L", Color: "Red", Category: "Tops"},
		},
		ShippingAddress: order.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		PaymentMethod:   "PayPal",
	}
}

func paid() *checkout.PayRequest {
	return &checkout.PayRequest{PaymentStatus: "paid", PaymentDetails: json.RawMessage(`{"id":"PAY-1","payer":{"email":"ana@example.com"}}`)}
}

func TestCreate(t *testing.T) {
	f := newFixture(t, nil)

	c, err := f.svc.Create(context.Background(), f.user, f.request())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("45").Equal(c.TotalPrice))
	assert.Equal(t, order.PaymentStatusProcessing, c.PaymentStatus)
	assert.False(t, c.IsPaid)
	assert.Equal(t, "Top Wear", c.CheckoutItems[0].Category)
	assert.Equal(t, "Tops", c.CheckoutItems[1].Category)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	empty := f.request()
	empty.CheckoutItems = nil
	_, err := f.svc.Create(ctx, f.user, empty)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	noAddress := f.request()
	noAddress.ShippingAddress.City = ""
	_, err = f.svc.Create(ctx, f.user, noAddress)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	zeroQty := f.request()
	zeroQty.CheckoutItems[0].Quantity = 0
	_, err = f.svc.Create(ctx, f.user, zeroQty)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	unknown := f.request()
	unknown.CheckoutItems[0].ProductID = uuid.New()
	_, err = f.svc.Create(ctx, f.user, unknown)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMarkPaid(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c, err := f.svc.Create(ctx, f.user, f.request())
	require.NoError(t, err)

	_, err = f.svc.MarkPaid(ctx, f.user, c.ID, &checkout.PayRequest{PaymentStatus: "pending"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.svc.MarkPaid(ctx, uuid.New(), c.ID, paid())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = f.svc.MarkPaid(ctx, f.user, uuid.New(), paid())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	updated, err := f.svc.MarkPaid(ctx, f.user, c.ID, paid())
	require.NoError(t, err)
	assert.True(t, updated.IsPaid)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, order.PaymentStatusPaid, updated.PaymentStatus)
	assert.JSONEq(t, `{"id":"PAY-1","payer":{"email":"ana@example.com"}}`, string(updated.PaymentDetails))
}

func TestFinalizeRequiresPayment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c, err := f.svc.Create(ctx, f.user, f.request())
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, f.user, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	orders, err := f.orders.ListByUser(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFinalize(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, cart.Identity{UserID: &f.user}, &cart.AddRequest{ProductID: f.product.ID, Quantity: 2})
	require.NoError(t, err)

	c, err := f.svc.Create(ctx, f.user, f.request())
	require.NoError(t, err)
	c, err = f.svc.MarkPaid(ctx, f.user, c.ID, paid())
	require.NoError(t, err)

	o, err := f.svc.Finalize(ctx, f.user, c.ID)
	require.NoError(t, err)
	assert.Equal(t, f.user, o.UserID)
	assert.True(t, o.IsPaid)
	assert.False(t, o.IsDelivered)
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, c.PaidAt, o.PaidAt)
	assert.True(t, c.TotalPrice.Equal(o.TotalPrice))
	assert.Equal(t, c.CheckoutItems, o.OrderItems)
	assert.Equal(t, c.ShippingAddress, o.ShippingAddress)

	stored, err := f.svc.Get(ctx, order.Caller{UserID: f.user}, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFinalized)
	assert.NotNil(t, stored.FinalizedAt)

	_, err = f.carts.Get(ctx, cart.Identity{UserID: &f.user})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ana@example.com", f.mailer.sent[0].UserEmail)
	assert.Equal(t, "45.00", f.mailer.sent[0].OrderTotal)

	_, err = f.svc.Finalize(ctx, f.user, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.svc.MarkPaid(ctx, f.user, c.ID, paid())
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	orders, err := f.orders.ListByUser(ctx, f.user)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestFinalizeKeepsOrderWhenCartCleanupFails(t *testing.T) {
	f := newFixture(t, failingCarts{})
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.user, f.request())
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(ctx, f.user, c.ID, paid())
	require.NoError(t, err)

	o, err := f.svc.Finalize(ctx, f.user, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, o)

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "failed to clear cart after order finalization", entry.Message)
}

func TestGetIsOwnerOrAdmin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c, err := f.svc.Create(ctx, f.user, f.request())
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, order.Caller{UserID: uuid.New()}, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = f.svc.Get(ctx, order.Caller{UserID: uuid.New(), Admin: true}, c.ID)
	assert.NoError(t, err)
}
