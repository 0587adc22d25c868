// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Service handles all email operations
type Service struct {
	config    *config.Config
	logger    logrus.FieldLogger
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config, logger logrus.FieldLogger) *Service {
	return &Service{
		config: cfg,
		logger: logger,
		templates: map[string]*template.Template{
			"order_confirmation": template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
			"subscription":       template.Must(template.New("subscription").Parse(subscriptionTemplate)),
		},
	}
}

// Send sends an email using the configured provider
func (s *Service) Send(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "log":
		s.logger.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("email suppressed by log provider")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendOrderConfirmation sends the order confirmation email
func (s *Service) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	data.EmailTemplateData = GetBaseTemplateData(s.config.External.Email.FromName, data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendSubscriptionWelcome greets a new newsletter subscriber
func (s *Service) SendSubscriptionWelcome(ctx context.Context, to string) error {
	data := SubscriptionData{
		EmailTemplateData: GetBaseTemplateData(s.config.External.Email.FromName, "", to),
	}

	htmlContent, err := s.renderTemplate("subscription", data)
	if err != nil {
		return fmt.Errorf("failed to render subscription template: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("Welcome to the %s newsletter", s.config.External.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeSubscription,
	})
}

func (s *Service) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
    <h1 style="color: #333;">Thank you for your order{{if .UserName}}, {{.UserName}}{{end}}!</h1>
    <p>Order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Items}}
      <tr>
        <td>{{.Name}}{{if .Size}} ({{.Size}}{{if .Color}}, {{.Color}}{{end}}){{end}}</td>
        <td>{{.Quantity}} x {{.Price}}</td>
        <td style="text-align: right;">{{.Total}}</td>
      </tr>
      {{end}}
    </table>
    <p><strong>Total: {{.OrderTotal}}</strong> ({{.PaymentMethod}})</p>
    <p>Shipping to {{.ShippingAddress.Address}}, {{.ShippingAddress.City}} {{.ShippingAddress.PostalCode}}, {{.ShippingAddress.Country}}</p>
    <hr>
    <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
  </div>
</body>
</html>`

const subscriptionTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
    <h1 style="color: #333;">Welcome to {{.SiteName}}</h1>
    <p>{{.UserEmail}} is now subscribed to new arrivals and offers.</p>
    <hr>
    <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
  </div>
</body>
</html>`
