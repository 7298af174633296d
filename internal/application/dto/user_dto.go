package dto

import "time"

// RegisterRequest body for POST /api/auth/register (admin only).
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role,omitempty"` // defaults to PARTNER
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse account in responses (never carries the credential).
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	TaxID       string    `json:"tax_id,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
