package dto

import "github.com/shopspring/decimal"

// CreateCategoryRequest body for POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse category in responses.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateServiceRequest body for POST /api/services.
type CreateServiceRequest struct {
	CategoryID   int64           `json:"category_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Location     string          `json:"location,omitempty"`
}

// UpdateServiceRequest body for PUT /api/services/:id.
type UpdateServiceRequest struct {
	Name         string           `json:"name,omitempty"`
	Description  string           `json:"description,omitempty"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price,omitempty"`
	Location     string           `json:"location,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ServiceResponse catalog service in responses.
type ServiceResponse struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Location     string          `json:"location,omitempty"`
	Active       bool            `json:"active"`
}
