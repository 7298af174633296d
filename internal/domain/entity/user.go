package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin   = "ADMIN"
	RolePartner = "PARTNER"
	RoleUser    = "USER"
)

// User is an account in the system. Email is the unique business key: the
// approval flow must reuse an existing account rather than create a second
// one for the same email.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // empty for accounts auto-created during approval
	Name         string
	CompanyName  string
	TaxID        string
	Address      string
	Role         string // ADMIN, PARTNER, USER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
