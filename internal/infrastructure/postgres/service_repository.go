package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepository)(nil)

// ServiceRepository PostgreSQL adapter for catalog services.
type ServiceRepository struct {
	db Querier
}

// NewServiceRepository builds the adapter over a pool or transaction.
func NewServiceRepository(db Querier) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `
	id, category_id, code, name, description, monthly_price, location, active,
	created_at, updated_at`

// Create inserts the service and fills ID. Returns domain.ErrDuplicate when
// the plan code collides.
func (r *ServiceRepository) Create(s *entity.Service) error {
	query := `
		INSERT INTO services (category_id, code, name, description, monthly_price, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRow(context.Background(), query,
		s.CategoryID, s.Code, s.Name, s.Description, s.MonthlyPrice, s.Location, s.Active,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: service code %s", domain.ErrDuplicate, s.Code)
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID returns the service or (nil, nil) when it does not exist.
func (r *ServiceRepository) GetByID(id int64) (*entity.Service, error) {
	query := `SELECT` + serviceColumns + ` FROM services WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// GetByCode returns the service with the given plan code, or (nil, nil).
func (r *ServiceRepository) GetByCode(code string) (*entity.Service, error) {
	query := `SELECT` + serviceColumns + ` FROM services WHERE code = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, code))
}

// List returns services ordered by name; categoryID 0 means all.
func (r *ServiceRepository) List(categoryID int64) ([]*entity.Service, error) {
	query := `SELECT` + serviceColumns + ` FROM services`
	args := []any{}
	if categoryID != 0 {
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []*entity.Service
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update persists changes to an existing service.
func (r *ServiceRepository) Update(s *entity.Service) error {
	query := `
		UPDATE services
		SET category_id = $2, code = $3, name = $4, description = $5,
		    monthly_price = $6, location = $7, active = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(context.Background(), query,
		s.ID, s.CategoryID, s.Code, s.Name, s.Description,
		s.MonthlyPrice, s.Location, s.Active, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: service code %s", domain.ErrDuplicate, s.Code)
		}
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update service %d: no rows affected", s.ID)
	}
	return nil
}

func (r *ServiceRepository) scanOne(row pgx.Row) (*entity.Service, error) {
	s, err := r.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *ServiceRepository) scanRow(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.Code, &s.Name, &s.Description, &s.MonthlyPrice, &s.Location, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
