package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry: a hosting plan partners can request.
// Code is the opaque plan identifier referenced by service requests.
type Service struct {
	ID           int64
	CategoryID   int64
	Code         string
	Name         string
	Description  string
	MonthlyPrice decimal.Decimal
	Location     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
