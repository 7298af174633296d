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

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository PostgreSQL adapter for catalog categories.
type CategoryRepository struct {
	db Querier
}

// NewCategoryRepository builds the adapter over a pool or transaction.
func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts the category and fills ID.
func (r *CategoryRepository) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(context.Background(), query,
		c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %s", domain.ErrDuplicate, c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID returns the category or (nil, nil) when it does not exist.
func (r *CategoryRepository) GetByID(id int64) (*entity.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`

	var c entity.Category
	err := r.db.QueryRow(context.Background(), query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List() ([]*entity.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`

	rows, err := r.db.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
