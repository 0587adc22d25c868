package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

type stubInvoices struct {
	err error
}

func (s stubInvoices) RenderInvoice(o *order.Order) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-" + o.Number()), nil
}

func newOrder(userID uuid.UUID) *order.Order {
	checkoutID := uuid.New()
	return &order.Order{
		UserID:     userID,
		CheckoutID: &checkoutID,
		OrderItems: []order.Item{
			{ProductID: uuid.New(), Name: "Slim Tee", Price: decimal.RequireFromString("15"), Quantity: 1},
		},
		ShippingAddress: order.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		PaymentMethod:   "PayPal",
		TotalPrice:      decimal.RequireFromString("15"),
		IsPaid:          true,
		PaymentStatus:   order.PaymentStatusPaid,
	}
}

func TestPlace(t *testing.T) {
	svc := order.NewService(memory.NewOrders(), stubInvoices{})
	ctx := context.Background()

	o := newOrder(uuid.New())
	require.NoError(t, svc.Place(ctx, o))
	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, order.StatusProcessing, o.Status)

	again := newOrder(o.UserID)
	again.CheckoutID = o.CheckoutID
	err := svc.Place(ctx, again)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	empty := newOrder(o.UserID)
	empty.OrderItems = nil
	err = svc.Place(ctx, empty)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestListMine(t *testing.T) {
	svc := order.NewService(memory.NewOrders(), stubInvoices{})
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	first := newOrder(alice)
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, svc.Place(ctx, first))
	second := newOrder(alice)
	require.NoError(t, svc.Place(ctx, second))
	require.NoError(t, svc.Place(ctx, newOrder(bob)))

	mine, err := svc.ListMine(ctx, order.Caller{UserID: alice}, nil)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	// a customer cannot look at someone else's orders
	mine, err = svc.ListMine(ctx, order.Caller{UserID: alice}, &bob)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := svc.ListMine(ctx, order.Caller{UserID: alice, Admin: true}, &bob)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, bob, theirs[0].UserID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGet(t *testing.T) {
	svc := order.NewService(memory.NewOrders(), stubInvoices{})
	ctx := context.Background()
	o := newOrder(uuid.New())
	require.NoError(t, svc.Place(ctx, o))

	got, err := svc.Get(ctx, order.Caller{UserID: o.UserID}, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.Get(ctx, order.Caller{UserID: uuid.New()}, o.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = svc.Get(ctx, order.Caller{UserID: uuid.New(), Admin: true}, o.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, order.Caller{UserID: o.UserID}, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateStatus(t *testing.T) {
	svc := order.NewService(memory.NewOrders(), stubInvoices{})
	ctx := context.Background()
	o := newOrder(uuid.New())
	require.NoError(t, svc.Place(ctx, o))

	_, err := svc.UpdateStatus(ctx, o.ID, "Lost")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.UpdateStatus(ctx, uuid.New(), "Shipped")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	shipped, err := svc.UpdateStatus(ctx, o.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, shipped.Status)
	assert.False(t, shipped.IsDelivered)
	assert.Nil(t, shipped.DeliveredAt)

	delivered, err := svc.UpdateStatus(ctx, o.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, delivered.Status)
	assert.True(t, delivered.IsDelivered)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.True(t, delivered.IsPaid)
	assert.True(t, o.TotalPrice.Equal(delivered.TotalPrice))
}

func TestDelete(t *testing.T) {
	svc := order.NewService(memory.NewOrders(), stubInvoices{})
	ctx := context.Background()
	o := newOrder(uuid.New())
	require.NoError(t, svc.Place(ctx, o))

	require.NoError(t, svc.Delete(ctx, o.ID))
	err := svc.Delete(ctx, o.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestInvoice(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrders()
	svc := order.NewService(repo, stubInvoices{})
	o := newOrder(uuid.New())
	require.NoError(t, svc.Place(ctx, o))

	doc, name, err := svc.Invoice(ctx, order.Caller{UserID: o.UserID}, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-"+o.Number()+".pdf", name)
	assert.Equal(t, "%PDF-"+o.Number(), string(doc))

	_, _, err = svc.Invoice(ctx, order.Caller{UserID: uuid.New()}, o.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	broken := order.NewService(repo, stubInvoices{err: errors.New("wkhtmltopdf missing")})
	_, _, err = broken.Invoice(ctx, order.Caller{UserID: o.UserID}, o.ID)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"processing", "SHIPPED", " Delivered ", "Cancelled"} {
		_, ok := order.ParseStatus(raw)
		assert.True(t, ok, raw)
	}
	_, ok := order.ParseStatus("Returned")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	o := &order.Order{ID: uuid.MustParse("0a1b2c3d-0000-0000-0000-000000000000")}
	assert.Equal(t, "ORD-0A1B2C3D", o.Number())
}
