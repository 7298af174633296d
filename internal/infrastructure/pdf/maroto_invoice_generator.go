// Package pdf renders tax invoices for approved service requests.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Issuer name + contact  │  TAX INVOICE + N° + Date  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer + company + GSTIN/PAN + address          │
//	│  SERVICE: plan / location / cycle / valid until             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Description | Cycle | Amount                        │
//	│  TOTALS: Subtotal / GST (18%) / TOTAL                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: payment status + transaction ref + thank-you       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/nexahost/portal-api/internal/application/billing"
)

// Issuer identity printed on every invoice.
const (
	issuerName    = "NexaHost Cloud Services Pvt. Ltd."
	issuerAddress = "Tower B, Cyber Park, Sector 39, Gurugram, Haryana 122003, India"
	issuerEmail   = "billing@nexahost.in"
	issuerPhone   = "+91 124 456 7890"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.PDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implements billing.PDFGenerator using Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF renders the invoice and returns its bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(_ context.Context, data billing.InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+data.Number, true).
		WithAuthor(issuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(data))
	m.AddRows(serviceRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(data))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: issuer identity (left), invoice number + issue date (right).
func headerRow(data billing.InvoiceData) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(issuerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(issuerAddress, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s", issuerEmail, issuerPhone), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 8,
			}),
			text.New("Date: "+data.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

// billToRow: customer block. Company, tax id and address only when present.
func billToRow(data billing.InvoiceData) core.Row {
	contact := "Email: " + data.CustomerEmail
	if data.TaxID != "" {
		contact += "   |   GSTIN/PAN: " + data.TaxID
	}

	cols := []core.Component{
		text.New("BILL TO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(data.CustomerName, props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
		}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	}
	top := 16.0
	if data.CompanyName != "" {
		cols = append(cols, text.New(data.CompanyName, props.Text{
			Size: 8, Top: top, Color: colorGray,
		}))
		top += 4
	}
	if data.Address != "" {
		cols = append(cols, text.New(data.Address, props.Text{
			Size: 8, Top: top, Color: colorGray,
		}))
		top += 4
	}

	return row.New(top + 2).Add(col.New(12).Add(cols...))
}

// serviceRow: what was provisioned and until when.
func serviceRow(data billing.InvoiceData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SERVICE DETAIL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Plan: %s   |   Location: %s   |   Cycle: %s   |   Valid until: %s",
				data.PlanID,
				nonEmpty(data.ServerLocation, "—"),
				data.BillingCycle,
				data.ExpiresAt.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: single-line-item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 7, align.Left),
		h("Cycle", 2, align.Center),
		h("Amount", 3, align.Right),
	)
}

// tableDetailRow: the one line item an approval-created invoice carries.
func tableDetailRow(data billing.InvoiceData) core.Row {
	desc := fmt.Sprintf("Hosting service — plan %s", data.PlanID)
	return row.New(7).Add(
		col.New(7).Add(text.New(desc, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(data.BillingCycle, props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(3).Add(text.New(money(data.Subtotal), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: subtotal, GST and grand total, right-aligned.
func totalsRow(data billing.InvoiceData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 12,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 12,
		})
	}

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			text.New("GST (18%):", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
			}),
			grandLabel("TOTAL:"),
		),
		col.New(4).Add(
			value(money(data.Subtotal)),
			text.New(money(data.Tax), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 6,
			}),
			grandValue(money(data.Total)),
		),
	)
}

// footerRows: payment confirmation and closing note.
func footerRows(data billing.InvoiceData) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Payment status: %s   |   Transaction ref: %s",
				data.PaymentStatus, data.TransactionID,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
			text.New("Thank you for choosing NexaHost.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 7, Color: colorPrimary,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(
				"This is a computer-generated invoice and does not require a signature. "+
					"Please retain this document for your records.",
				props.Text{Size: 6.5, Color: colorGray, Top: 1},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formats an amount with the rupee sign and two decimals.
func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
