package billing

import (
	"context"
	"fmt"
	"time"

	domainbilling "github.com/nexahost/portal-api/internal/domain/billing"
	"github.com/nexahost/portal-api/internal/domain/entity"
)

// InvoiceService renders invoice PDFs for approved purchases and stores them
// in the document store. The service is the requests.InvoiceIssuer used by
// the approval workflow.
type InvoiceService struct {
	generator PDFGenerator
	store     DocumentStore
}

// NewInvoiceService builds the service.
func NewInvoiceService(generator PDFGenerator, store DocumentStore) *InvoiceService {
	return &InvoiceService{generator: generator, store: store}
}

// IssueInvoice renders the invoice for the purchase and returns its stored
// relative path. The file name is unique per render
// (invoice-<purchaseID>-<epochMillis>.pdf) so a retried render never
// overwrites an earlier artifact.
func (s *InvoiceService) IssueInvoice(
	ctx context.Context,
	purchase *entity.Purchase,
	request *entity.ServiceRequest,
	account *entity.User,
) (string, error) {
	subtotal, tax, total := domainbilling.Totals(purchase.Amount)

	data := InvoiceData{
		Number:         fmt.Sprintf("INV-%d", purchase.ID),
		IssueDate:      purchase.CreatedAt,
		TransactionID:  purchase.TransactionID,
		CustomerName:   account.Name,
		CustomerEmail:  account.Email,
		CompanyName:    request.CompanyName,
		Address:        request.Address,
		TaxID:          request.TaxID,
		PlanID:         purchase.PlanID,
		ServerLocation: request.ServerLocation,
		BillingCycle:   request.BillingCycle,
		ExpiresAt:      purchase.ExpiresAt,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          total,
		PaymentStatus:  purchase.PaymentStatus,
	}

	pdfBytes, err := s.generator.GenerateInvoicePDF(ctx, data)
	if err != nil {
		return "", fmt.Errorf("generate invoice pdf: %w", err)
	}

	name := fmt.Sprintf("invoice-%d-%d.pdf", purchase.ID, time.Now().UnixMilli())
	path, err := s.store.Save(ctx, name, pdfBytes)
	if err != nil {
		return "", fmt.Errorf("store invoice pdf: %w", err)
	}
	return path, nil
}
