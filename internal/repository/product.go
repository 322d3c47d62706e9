package repository

import (
	"context"

	"shop-backend/internal/domain"
)

// ProductRepository defines persistence operations for Product entities.
type ProductRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, product *domain.Product) (int64, error)
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// Update replaces every mutable field of the row with the given id and
	// reports ErrNotFound when no row matched.
	Update(ctx context.Context, product *domain.Product) error
}
