package entity

import "time"

// Category groups services in the public catalog (e.g. "VPS", "Dedicated Servers").
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
