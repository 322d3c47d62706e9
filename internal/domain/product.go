package domain

import "time"

// Product is a catalog entry. Image holds the generated filename (or object
// key) of the uploaded picture, never the client's original filename.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Fabric      string
	Color       string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
