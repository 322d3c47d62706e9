package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"
)

// ErrProductNotFound is returned when the referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductInput carries the full set of mutable product fields. Updates are a
// complete replace, so every field applies on both create and update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Fabric      string
	Color       string
	Image       string
}

// CatalogService exposes CRU operations over the product catalog. There is no
// delete.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
}

type catalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	if _, err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	product.ID = id
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return updated, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Image) == "" {
		return fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	return nil
}

func productFromInput(input ProductInput) *domain.Product {
	return &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Fabric:      strings.TrimSpace(input.Fabric),
		Color:       strings.TrimSpace(input.Color),
		Image:       input.Image,
	}
}
