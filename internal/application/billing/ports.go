package billing

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceData is everything the PDF layer needs to render an invoice. The
// application layer computes totals; the generator only formats.
type InvoiceData struct {
	Number        string // INV-<purchaseID>
	IssueDate     time.Time
	TransactionID string

	CustomerName  string
	CustomerEmail string
	CompanyName   string // optional
	Address       string // optional
	TaxID         string // optional

	PlanID         string
	ServerLocation string
	BillingCycle   string
	ExpiresAt      time.Time

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal

	PaymentStatus string
}

// PDFGenerator renders an invoice document.
type PDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data InvoiceData) ([]byte, error)
}

// DocumentStore persists and serves rendered invoice documents. Save returns
// the relative path used for later retrieval.
type DocumentStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}
