package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

func TestRenderHTML(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{CompanyName: "Acme Apparel", CompanyEmail: "help@acme.test"}}
	svc := NewService(cfg)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	o := &order.Order{
		ID: uuid.MustParse("0a1b2c3d-0000-0000-0000-000000000000"),
		OrderItems: []order.Item{
			{Name: "Slim <Tee>", Size: "M", Color: "Red", Quantity: 2, Price: decimal.RequireFromString("15")},
		},
		ShippingAddress: order.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		PaymentMethod:   "PayPal",
		TotalPrice:      decimal.RequireFromString("30"),
		IsPaid:          true,
		Status:          order.StatusShipped,
		CreatedAt:       time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
	}

	out, err := svc.RenderHTML(o)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "INV-0A1B2C3D")
	assert.Contains(t, html, "ORD-0A1B2C3D")
	assert.Contains(t, html, "March 1, 2026")
	assert.Contains(t, html, "February 27, 2026")
	assert.Contains(t, html, "Acme Apparel")
	assert.Contains(t, html, "Slim &lt;Tee&gt;")
	assert.Contains(t, html, "$15.00")
	assert.Contains(t, html, "Total: $30.00")
	assert.Contains(t, html, "status-paid")
	assert.Contains(t, html, "Springfield 12345")
}
