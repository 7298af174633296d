package entity

import "time"

// Service request lifecycle. PENDING is the only non-terminal state: a request
// is reviewed exactly once and is immutable afterwards.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// Billing cycles accepted on intake.
const (
	CycleMonthly   = "MONTHLY"
	CycleQuarterly = "QUARTERLY"
	CycleYearly    = "YEARLY"
)

// Service types.
const (
	ServiceTypeCloud  = "CLOUD"
	ServiceTypeServer = "SERVER"
)

// ServiceRequest is a partner's submission asking for a hosting/cloud plan to
// be provisioned and billed.
type ServiceRequest struct {
	ID             int64
	FullName       string
	Email          string
	Phone          string
	CompanyName    string
	TaxID          string // GSTIN or PAN
	Address        string
	PlanID         string // opaque plan/tier identifier, e.g. "VPS-Basic"
	ServiceType    string // CLOUD on intake; the resulting purchase is categorized SERVER
	ServerLocation string
	BillingCycle   string // MONTHLY, QUARTERLY, YEARLY
	Notes          string
	Status         string // PENDING, APPROVED, REJECTED
	AdminNotes     string
	ReviewedBy     *int64
	ReviewedAt     *time.Time
	PurchaseID     *int64 // set on approval, nil otherwise
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
