// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service renders order invoices
type Service struct {
	config *config.Config
	tmpl   *template.Template
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("invoice").Parse(invoiceTemplate)),
		now:    time.Now,
	}
}

// RenderInvoice produces the PDF invoice of an order
func (s *Service) RenderInvoice(o *order.Order) ([]byte, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return pdfg.Bytes(), nil
}

// RenderHTML renders the invoice markup that is fed to wkhtmltopdf
func (s *Service) RenderHTML(o *order.Order) ([]byte, error) {
	data := InvoiceData{
		InvoiceNumber: "INV-" + o.Number()[len("ORD-"):],
		OrderNumber:   o.Number(),
		InvoiceDate:   s.now().Format("January 2, 2006"),
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		Paid:          o.IsPaid,
		Address:       o.ShippingAddress,
		Total:         o.TotalPrice.StringFixed(2),
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.CompanyWebsite,
		},
	}
	for _, item := range o.OrderItems {
		data.Lines = append(data.Lines, InvoiceLine{
			Name:     item.Name,
			Size:     item.Size,
			Color:    item.Color,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
			Total:    item.Subtotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	OrderNumber   string
	InvoiceDate   string
	OrderDate     string
	Status        string
	PaymentMethod string
	Paid          bool
	Address       order.ShippingAddress
	Lines         []InvoiceLine
	Total         string
	Company       CompanyInfo
}

// InvoiceLine is one row of the items table
type InvoiceLine struct {
	Name     string
	Size     string
	Color    string
	Quantity int
	Price    string
	Total    string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Website string
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { overflow: hidden; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .company-info { float: left; }
        .invoice-info { float: right; text-align: right; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right !important; width: 80px; }
        .total-row { font-size: 18px; font-weight: bold; text-align: right; }
        .status-badge { padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; text-transform: uppercase; }
        .status-paid { background-color: #dcfce7; color: #166534; }
        .status-pending { background-color: #fef3c7; color: #92400e; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            <p>{{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.OrderNumber}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
        </div>
    </div>

    <p>
        <strong>Status:</strong> {{.Status}}
        <span class="status-badge {{if .Paid}}status-paid{{else}}status-pending{{end}}">{{if .Paid}}paid{{else}}unpaid{{end}}</span>
        <strong>Payment:</strong> {{.PaymentMethod}}
    </p>

    <div class="section-title">Ship To:</div>
    <p>{{.Address.Address}}</p>
    <p>{{.Address.City}} {{.Address.PostalCode}}</p>
    <p>{{.Address.Country}}</p>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th>Size</th>
                <th>Color</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Size}}</td>
                <td>{{.Color}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.Price}}</td>
                <td class="num">${{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total: ${{.Total}}</p>

    <div class="footer">
        <p>Thank you for your business!</p>
        <p>If you have any questions about this invoice, please contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
