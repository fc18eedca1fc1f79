package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

func TestCreateProductManufacturerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, f.buyer.ID, &entity.Product{Name: "Bootleg"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	p, err := f.catalog.CreateProduct(ctx, f.manufacturer.ID, &entity.Product{Name: "Sorghum Flour"})
	require.NoError(t, err)
	assert.Equal(t, f.manufacturer.ID, p.ManufacturerID)
	assert.True(t, p.IsActive)
}

func TestFormatOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateFormat(ctx, f.seller.ID, f.product.ID, &entity.ProductFormat{
		Name: "5kg sack", SKU: "MF-5KG", UnitOfMeasure: "kg", BasePrice: dec("22.00"),
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	pf, err := f.catalog.CreateFormat(ctx, f.manufacturer.ID, f.product.ID, &entity.ProductFormat{
		Name: "5kg sack", SKU: "MF-5KG", UnitOfMeasure: "kg", BasePrice: dec("22.00"),
	})
	require.NoError(t, err)

	pf.BasePrice = dec("20.00")
	_, err = f.catalog.UpdateFormat(ctx, f.seller.ID, pf)
	require.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := f.catalog.UpdateFormat(ctx, f.manufacturer.ID, pf)
	require.NoError(t, err)
	assert.True(t, updated.BasePrice.Equal(dec("20.00")))

	require.NoError(t, f.catalog.DeleteFormat(ctx, f.manufacturer.ID, pf.ID))
	_, err = f.store.Catalog().GetFormatByID(ctx, pf.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListProductsFiltered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	retired := entity.Product{Name: "Retired", ManufacturerID: f.manufacturer.ID, IsActive: false}
	require.NoError(t, f.store.Catalog().CreateProduct(ctx, &retired))

	active, err := f.catalog.ListProducts(ctx, repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.product.ID, active[0].ID)

	mine, err := f.catalog.ListProducts(ctx, repository.ProductFilter{ManufacturerID: &f.manufacturer.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
