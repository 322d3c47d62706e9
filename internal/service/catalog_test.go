package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shop-backend/internal/repository"
	"shop-backend/internal/repository/sqldb"
)

func newCatalogService(t *testing.T) CatalogService {
	t.Helper()

	db, err := sqldb.Open(sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqldb.NewProductRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewCatalogService(repo)
}

func validInput() ProductInput {
	return ProductInput{
		Name:        "linen shirt",
		Description: "a shirt",
		Price:       49.9,
		Fabric:      "linen",
		Color:       "white",
		Image:       "1700000000000.jpg",
	}
}

func TestListProductsEmpty(t *testing.T) {
	catalog := newCatalogService(t)

	products, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestCreateProductValidation(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*ProductInput){
		"missing name":        func(in *ProductInput) { in.Name = " " },
		"missing description": func(in *ProductInput) { in.Description = "" },
		"zero price":          func(in *ProductInput) { in.Price = 0 },
		"negative price":      func(in *ProductInput) { in.Price = -1 },
		"missing image":       func(in *ProductInput) { in.Image = "" },
	} {
		in := validInput()
		mutate(&in)
		_, err := catalog.CreateProduct(ctx, in)
		require.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestCreateAndListProducts(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	created, err := catalog.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, created.ID, products[0].ID)
	require.Equal(t, "linen shirt", products[0].Name)
	require.Equal(t, "1700000000000.jpg", products[0].Image)
}

func TestUpdateProductReplacesAllFields(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	created, err := catalog.CreateProduct(ctx, validInput())
	require.NoError(t, err)

	in := ProductInput{
		Name:        "wool coat",
		Description: "a coat",
		Price:       120,
		Image:       "1700000000001.png",
	}
	updated, err := catalog.UpdateProduct(ctx, created.ID, in)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "wool coat", updated.Name)
	require.Equal(t, 120.0, updated.Price)
	// full replace clears optional fields left out of the input
	require.Empty(t, updated.Fabric)
	require.Empty(t, updated.Color)
	require.Equal(t, "1700000000001.png", updated.Image)
}

func TestUpdateProductNotFound(t *testing.T) {
	catalog := newCatalogService(t)

	_, err := catalog.UpdateProduct(context.Background(), 7, validInput())
	require.ErrorIs(t, err, ErrProductNotFound)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}
