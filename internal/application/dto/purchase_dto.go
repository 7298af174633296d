package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseResponse billing record in responses.
type PurchaseResponse struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	PlanID        string          `json:"plan_id"`
	ServiceType   string          `json:"service_type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	TransactionID string          `json:"transaction_id"`
	ExpiresAt     time.Time       `json:"expires_at"`
	PlanType      string          `json:"plan_type"`
	InvoicePath   string          `json:"invoice_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
