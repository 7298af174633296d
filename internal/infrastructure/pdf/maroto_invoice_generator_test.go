package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexahost/portal-api/internal/application/billing"
)

func TestGenerateInvoicePDF_Smoke(t *testing.T) {
	g := NewMarotoInvoiceGenerator()

	data := billing.InvoiceData{
		Number:         "INV-31",
		IssueDate:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		TransactionID:  "REQ42-1756300000000",
		CustomerName:   "Asha Verma",
		CustomerEmail:  "asha@example.in",
		CompanyName:    "Verma Web Solutions",
		Address:        "14 MG Road, Bengaluru",
		TaxID:          "29ABCDE1234F1Z5",
		PlanID:         "VPS-Basic",
		ServerLocation: "Mumbai",
		BillingCycle:   "MONTHLY",
		ExpiresAt:      time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC),
		Subtotal:       decimal.RequireFromString("999.00"),
		Tax:            decimal.RequireFromString("179.82"),
		Total:          decimal.RequireFromString("1178.82"),
		PaymentStatus:  "COMPLETED",
	}

	out, err := g.GenerateInvoicePDF(context.Background(), data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateInvoicePDF_MinimalCustomer(t *testing.T) {
	g := NewMarotoInvoiceGenerator()

	data := billing.InvoiceData{
		Number:        "INV-7",
		IssueDate:     time.Now(),
		TransactionID: "REQ7-1",
		CustomerName:  "Ravi",
		CustomerEmail: "ravi@example.in",
		PlanID:        "CLOUD-S",
		BillingCycle:  "YEARLY",
		ExpiresAt:     time.Now().AddDate(0, 0, 365),
		Subtotal:      decimal.NewFromInt(5000),
		Tax:           decimal.RequireFromString("900.00"),
		Total:         decimal.RequireFromString("5900.00"),
		PaymentStatus: "COMPLETED",
	}

	out, err := g.GenerateInvoicePDF(context.Background(), data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
