package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment fields for purchases created through the approval flow. No payment
// gateway is involved: the record is marked completed at creation.
const (
	PaymentMethodPartnerRequest = "PARTNER_REQUEST"
	PaymentStatusCompleted      = "COMPLETED"
)

// Plan types on the billing record.
const (
	PlanTypeMonthly = "MONTHLY"
	PlanTypeYearly  = "YEARLY"
)

// Purchase is the billing record created once a service request is approved:
// a paid, time-bounded service entitlement.
type Purchase struct {
	ID            int64
	UserID        int64
	PlanID        string
	ServiceType   string // SERVER for approval-created purchases
	Amount        decimal.Decimal
	Currency      string // INR
	PaymentMethod string
	PaymentStatus string
	TransactionID string // unique, REQ<requestID>-<epochMillis>
	ExpiresAt     time.Time
	PlanType      string // MONTHLY or YEARLY
	InvoicePath   string // relative path of the rendered PDF; empty until rendered
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
