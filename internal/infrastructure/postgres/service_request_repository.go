package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

var _ repository.ServiceRequestRepository = (*ServiceRequestRepository)(nil)

// ServiceRequestRepository PostgreSQL adapter for service requests.
type ServiceRequestRepository struct {
	db Querier
}

// NewServiceRequestRepository builds the adapter over a pool or transaction.
func NewServiceRequestRepository(db Querier) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

const serviceRequestColumns = `
	id, full_name, email, phone, company_name, tax_id, address,
	plan_id, service_type, server_location, billing_cycle, notes,
	status, admin_notes, reviewed_by, reviewed_at, purchase_id,
	created_at, updated_at`

// Create inserts the request and fills ID from the database.
func (r *ServiceRequestRepository) Create(req *entity.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (
			full_name, email, phone, company_name, tax_id, address,
			plan_id, service_type, server_location, billing_cycle, notes,
			status, admin_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	err := r.db.QueryRow(context.Background(), query,
		req.FullName, req.Email, req.Phone, req.CompanyName, req.TaxID, req.Address,
		req.PlanID, req.ServiceType, req.ServerLocation, req.BillingCycle, req.Notes,
		req.Status, req.AdminNotes, req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("insert service request: %w", err)
	}
	return nil
}

// GetByID returns the request or (nil, nil) when it does not exist.
func (r *ServiceRequestRepository) GetByID(id int64) (*entity.ServiceRequest, error) {
	query := `SELECT` + serviceRequestColumns + ` FROM service_requests WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate reads the row with FOR UPDATE. Inside a transaction this
// blocks concurrent reviewers of the same request until commit/rollback.
func (r *ServiceRequestRepository) GetByIDForUpdate(id int64) (*entity.ServiceRequest, error) {
	query := `SELECT` + serviceRequestColumns + ` FROM service_requests WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// Update persists review outcome fields.
func (r *ServiceRequestRepository) Update(req *entity.ServiceRequest) error {
	query := `
		UPDATE service_requests
		SET status = $2, admin_notes = $3, reviewed_by = $4, reviewed_at = $5,
		    purchase_id = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(context.Background(), query,
		req.ID, req.Status, req.AdminNotes, req.ReviewedBy, req.ReviewedAt,
		req.PurchaseID, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update service request %d: no rows affected", req.ID)
	}
	return nil
}

// List returns requests newest first. status filters when non-empty.
func (r *ServiceRequestRepository) List(status string, limit, offset int) ([]*entity.ServiceRequest, error) {
	query := `SELECT` + serviceRequestColumns + ` FROM service_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceRequest
	for rows.Next() {
		req, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *ServiceRequestRepository) scanOne(row pgx.Row) (*entity.ServiceRequest, error) {
	req, err := r.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return req, err
}

func (r *ServiceRequestRepository) scanRow(row pgx.Row) (*entity.ServiceRequest, error) {
	var req entity.ServiceRequest
	err := row.Scan(
		&req.ID, &req.FullName, &req.Email, &req.Phone, &req.CompanyName, &req.TaxID, &req.Address,
		&req.PlanID, &req.ServiceType, &req.ServerLocation, &req.BillingCycle, &req.Notes,
		&req.Status, &req.AdminNotes, &req.ReviewedBy, &req.ReviewedAt, &req.PurchaseID,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
