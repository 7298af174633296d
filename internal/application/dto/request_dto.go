package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRequestInput body for POST /api/requests.
// FullName, Email, Phone and PlanID are required; ServiceType, ServerLocation
// and BillingCycle have defaults applied on intake.
type CreateRequestInput struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CompanyName    string `json:"company_name,omitempty"`
	TaxID          string `json:"tax_id,omitempty"`
	Address        string `json:"address,omitempty"`
	PlanID         string `json:"plan_id"`
	ServiceType    string `json:"service_type,omitempty"`
	ServerLocation string `json:"server_location,omitempty"`
	BillingCycle   string `json:"billing_cycle,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// ApproveRequestInput body for POST /api/requests/:id/approve.
// Amount is a pointer so that an absent field and a zero amount both fail
// validation rather than silently billing zero.
type ApproveRequestInput struct {
	Amount     *decimal.Decimal `json:"amount"`
	AdminNotes string           `json:"admin_notes,omitempty"`
}

// RejectRequestInput body for POST /api/requests/:id/reject.
type RejectRequestInput struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// RequestResponse service request in responses.
type RequestResponse struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	CompanyName    string     `json:"company_name,omitempty"`
	TaxID          string     `json:"tax_id,omitempty"`
	Address        string     `json:"address,omitempty"`
	PlanID         string     `json:"plan_id"`
	ServiceType    string     `json:"service_type"`
	ServerLocation string     `json:"server_location"`
	BillingCycle   string     `json:"billing_cycle"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	ReviewedBy     *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	PurchaseID     *int64     `json:"purchase_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ApprovalResponse result of an approval: the updated request plus the
// billing record it produced.
type ApprovalResponse struct {
	Request  RequestResponse  `json:"request"`
	Purchase PurchaseResponse `json:"purchase"`
}
