package requests

import (
	"context"

	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

// TxRunner executes a function inside a single transaction covering the
// repositories the approval workflow writes to. The PENDING precondition
// check and every write commit or roll back together.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		requestRepo repository.ServiceRequestRepository,
		userRepo repository.UserRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// InvoiceIssuer renders the invoice document for an approved purchase and
// returns its storage path. Rendering is a side-effecting external call and
// runs after the database transaction has committed: a failure here must not
// undo the billing record.
type InvoiceIssuer interface {
	IssueInvoice(ctx context.Context, purchase *entity.Purchase, request *entity.ServiceRequest, account *entity.User) (string, error)
}
