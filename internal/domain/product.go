package domain

import "time"

// Product is the catalog entity managed by the CRUD endpoints.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
