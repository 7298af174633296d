package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)

// PurchaseRepository PostgreSQL adapter for billing records.
type PurchaseRepository struct {
	db Querier
}

// NewPurchaseRepository builds the adapter over a pool or transaction.
func NewPurchaseRepository(db Querier) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

const purchaseColumns = `
	id, user_id, plan_id, service_type, amount, currency,
	payment_method, payment_status, transaction_id, expires_at, plan_type,
	invoice_path, created_at, updated_at`

// Create inserts the purchase and fills ID. Returns domain.ErrDuplicate when
// the transaction id collides.
func (r *PurchaseRepository) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (
			user_id, plan_id, service_type, amount, currency,
			payment_method, payment_status, transaction_id, expires_at, plan_type,
			invoice_path, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.db.QueryRow(context.Background(), query,
		p.UserID, p.PlanID, p.ServiceType, p.Amount, p.Currency,
		p.PaymentMethod, p.PaymentStatus, p.TransactionID, p.ExpiresAt, p.PlanType,
		p.InvoicePath, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", domain.ErrDuplicate, p.TransactionID)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID returns the purchase or (nil, nil) when it does not exist.
func (r *PurchaseRepository) GetByID(id int64) (*entity.Purchase, error) {
	query := `SELECT` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// UpdateInvoicePath attaches the rendered invoice document to the record.
func (r *PurchaseRepository) UpdateInvoicePath(id int64, path string) error {
	query := `UPDATE purchases SET invoice_path = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(context.Background(), query, id, path, time.Now())
	if err != nil {
		return fmt.Errorf("update purchase invoice path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update purchase %d: no rows affected", id)
	}
	return nil
}

// ListByUser returns a user's purchases newest first.
func (r *PurchaseRepository) ListByUser(userID int64, limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT` + purchaseColumns + ` FROM purchases
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// List returns all purchases newest first.
func (r *PurchaseRepository) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT` + purchaseColumns + ` FROM purchases
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *PurchaseRepository) list(query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.Purchase
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PurchaseRepository) scanOne(row pgx.Row) (*entity.Purchase, error) {
	p, err := r.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PurchaseRepository) scanRow(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.UserID, &p.PlanID, &p.ServiceType, &p.Amount, &p.Currency,
		&p.PaymentMethod, &p.PaymentStatus, &p.TransactionID, &p.ExpiresAt, &p.PlanType,
		&p.InvoicePath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
