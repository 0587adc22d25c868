// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeSubscription      EmailType = "subscription"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName  string
	UserName  string
	UserEmail string
	Year      int
}

// OrderConfirmationData contains data for order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderNumber     string
	OrderDate       string
	OrderTotal      string
	PaymentMethod   string
	Items           []OrderItem
	ShippingAddress Address
}

// OrderItem represents an item in the order
type OrderItem struct {
	Name     string
	Size     string
	Color    string
	Quantity int
	Price    string
	Total    string
}

// Address represents a shipping address
type Address struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// SubscriptionData contains data for the newsletter welcome email
type SubscriptionData struct {
	EmailTemplateData
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:  siteName,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
