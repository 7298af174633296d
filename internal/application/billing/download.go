package billing

import (
	"context"
	"fmt"
	"io"

	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

// DownloadUseCase serves stored invoice documents: an authorization plus
// existence check in front of the document store.
type DownloadUseCase struct {
	purchaseRepo repository.PurchaseRepository
	store        DocumentStore
}

// NewDownloadUseCase builds the use case.
func NewDownloadUseCase(purchaseRepo repository.PurchaseRepository, store DocumentStore) *DownloadUseCase {
	return &DownloadUseCase{purchaseRepo: purchaseRepo, store: store}
}

// DownloadInvoice returns a reader over the invoice PDF and the download
// filename (invoice-<purchaseID>.pdf).
//
// Returns:
//   - domain.ErrNotFound  when the purchase does not exist, or when its
//     invoice has not been rendered yet (an approval whose rendering failed
//     leaves the purchase without a path; that state is not corruption).
//   - domain.ErrForbidden when the caller is neither the owner nor an admin.
func (uc *DownloadUseCase) DownloadInvoice(ctx context.Context, callerID int64, callerRole string, purchaseID int64) (io.ReadCloser, string, error) {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, "", fmt.Errorf("load purchase: %w", err)
	}
	if purchase == nil {
		return nil, "", domain.ErrNotFound
	}
	if callerRole != entity.RoleAdmin && purchase.UserID != callerID {
		return nil, "", domain.ErrForbidden
	}

	if purchase.InvoicePath == "" {
		return nil, "", fmt.Errorf("%w: invoice not yet available", domain.ErrNotFound)
	}
	exists, err := uc.store.Exists(ctx, purchase.InvoicePath)
	if err != nil {
		return nil, "", fmt.Errorf("check invoice document: %w", err)
	}
	if !exists {
		return nil, "", fmt.Errorf("%w: invoice not yet available", domain.ErrNotFound)
	}

	rc, err := uc.store.Open(ctx, purchase.InvoicePath)
	if err != nil {
		return nil, "", fmt.Errorf("open invoice document: %w", err)
	}
	return rc, fmt.Sprintf("invoice-%d.pdf", purchase.ID), nil
}

// ListPurchases returns purchases visible to the caller: admins see all,
// everyone else their own.
func (uc *DownloadUseCase) ListPurchases(ctx context.Context, callerID int64, callerRole string, limit, offset int) ([]*entity.Purchase, error) {
	if callerRole == entity.RoleAdmin {
		return uc.purchaseRepo.List(limit, offset)
	}
	return uc.purchaseRepo.ListByUser(callerID, limit, offset)
}
