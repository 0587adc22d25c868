package email

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func newTestService(provider string) (*Service, *test.Hook) {
	cfg := &config.Config{External: config.ExternalConfig{Email: config.EmailConfig{
		Provider: provider, FromEmail: "shop@example.com", FromName: "Storefront",
	}}}
	logger, hook := test.NewNullLogger()
	return NewService(cfg, logger), hook
}

func TestSendOrderConfirmationWithLogProvider(t *testing.T) {
	svc, hook := newTestService("log")

	err := svc.SendOrderConfirmation(context.Background(), OrderConfirmationData{
		EmailTemplateData: EmailTemplateData{UserName: "Ana", UserEmail: "ana@example.com"},
		OrderNumber:       "ORD-1",
		OrderTotal:        "25.00",
		Items:             []OrderItem{{Name: "Slim Tee", Quantity: 2, Price: "12.50", Total: "25.00"}},
	})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Order Confirmation - ORD-1", entry.Data["subject"])
	assert.Equal(t, []string{"ana@example.com"}, entry.Data["to"])
}

func TestRenderOrderConfirmation(t *testing.T) {
	svc, _ := newTestService("log")

	html, err := svc.renderTemplate("order_confirmation", OrderConfirmationData{
		EmailTemplateData: EmailTemplateData{SiteName: "Storefront", UserName: "Ana"},
		OrderNumber:       "ORD-2",
		Items:             []OrderItem{{Name: "Cargo <Pants>", Size: "32", Quantity: 1, Price: "40", Total: "40"}},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "ORD-2")
	assert.Contains(t, html, "Cargo &lt;Pants&gt; (32)")
}

func TestUnsupportedProvider(t *testing.T) {
	svc, _ := newTestService("carrier-pigeon")
	assert.Error(t, svc.SendSubscriptionWelcome(context.Background(), "x@example.com"))
}

func TestSMTPRequiresHost(t *testing.T) {
	svc, _ := newTestService("smtp")
	err := svc.SendSubscriptionWelcome(context.Background(), "x@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP configuration incomplete")
}

func TestBuildMessageHeaderOrder(t *testing.T) {
	msg := string(buildMessage("Shop <shop@example.com>", &Email{To: []string{"a@x.io", "b@x.io"}, Subject: "Hi", HTMLContent: "<p>x</p>"}))
	assert.True(t, strings.HasPrefix(msg, "From: Shop <shop@example.com>\r\nTo: a@x.io, b@x.io\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>x</p>"))
}
