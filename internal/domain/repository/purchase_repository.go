package repository

import "github.com/nexahost/portal-api/internal/domain/entity"

// PurchaseRepository persistence port for billing records.
type PurchaseRepository interface {
	// Create persists the purchase and fills ID. Returns domain.ErrDuplicate
	// when the transaction id collides.
	Create(p *entity.Purchase) error
	GetByID(id int64) (*entity.Purchase, error)
	// UpdateInvoicePath attaches the rendered invoice document to the record.
	UpdateInvoicePath(id int64, path string) error
	ListByUser(userID int64, limit, offset int) ([]*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}
