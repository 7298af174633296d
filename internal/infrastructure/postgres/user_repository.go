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

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository PostgreSQL adapter for accounts.
type UserRepository struct {
	db Querier
}

// NewUserRepository builds the adapter over a pool or transaction.
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, password_hash, name, company_name, tax_id, address, role,
	created_at, updated_at`

// Create inserts the account. Returns domain.ErrDuplicate on an email collision.
func (r *UserRepository) Create(u *entity.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, company_name, tax_id, address, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRow(context.Background(), query,
		u.Email, u.PasswordHash, u.Name, u.CompanyName, u.TaxID, u.Address, u.Role,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", domain.ErrDuplicate, u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the account or (nil, nil) when it does not exist.
func (r *UserRepository) GetByID(id int64) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// GetByEmail returns the account or (nil, nil) when it does not exist.
func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, email))
}

// UpsertByEmail atomically finds or creates the account for u.Email. The
// insert yields on conflict, then the canonical row is read back; under the
// unique constraint this never creates a second account for the same email.
func (r *UserRepository) UpsertByEmail(u *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, company_name, tax_id, address, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO NOTHING`

	_, err := r.db.Exec(context.Background(), query,
		u.Email, u.PasswordHash, u.Name, u.CompanyName, u.TaxID, u.Address, u.Role,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	existing, err := r.GetByEmail(u.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("upsert user %s: row not found after insert", u.Email)
	}
	return existing, nil
}

// List returns accounts newest first.
func (r *UserRepository) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u, err := r.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *UserRepository) scanRow(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CompanyName, &u.TaxID, &u.Address, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
