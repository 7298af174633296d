package repository

import "github.com/nexahost/portal-api/internal/domain/entity"

// UserRepository persistence port for accounts. Email is unique; the storage
// layer enforces it with a constraint regardless of application-level checks.
type UserRepository interface {
	// Create persists a new account and fills ID. Returns domain.ErrDuplicate
	// on an email collision.
	Create(u *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpsertByEmail atomically finds or creates the account for u.Email and
	// returns the canonical row. An existing account is returned untouched;
	// never relies on read-then-write.
	UpsertByEmail(u *entity.User) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
}
