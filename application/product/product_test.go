package product_test

import (
	"context"
	"testing"

	appproduct "github.com/rendyfeb/logistics/application/product"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*memory.Store, appproduct.ProductApp) {
	t.Helper()
	store := memory.NewStore()
	return store, appproduct.NewProductApp(store.Products(), store.StockLedger(), nil)
}

func TestCreateProduct_ActiveByDefault(t *testing.T) {
	_, app := newApp(t)

	p, err := app.CreateProduct(context.Background(), &model.ProductCreateRequest{SKU: "SKU-1", Name: "Widget", PriceCents: 1000})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.NotZero(t, p.ID)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	_, err := app.CreateProduct(ctx, &model.ProductCreateRequest{SKU: "SKU-1", Name: "Widget", PriceCents: 1000})
	require.NoError(t, err)

	_, err = app.CreateProduct(ctx, &model.ProductCreateRequest{SKU: "sku-1", Name: "Copy", PriceCents: 500})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrSKUTaken))
}

func TestDeleteProduct_GuardedByStockOnHand(t *testing.T) {
	store, app := newApp(t)
	ctx := context.Background()

	p, err := app.CreateProduct(ctx, &model.ProductCreateRequest{SKU: "SKU-1", Name: "Widget", PriceCents: 1000})
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, 1, p.ID, 5)
	require.NoError(t, err)

	err = app.DeleteProduct(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrProductHasStock))

	// Draining the stock unblocks the delete; zero-qty records are fine.
	_, err = store.StockLedger().Adjust(ctx, 1, p.ID, -5)
	require.NoError(t, err)
	require.NoError(t, app.DeleteProduct(ctx, p.ID))

	_, err = app.GetProduct(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrProductNotFound))
}

func TestUpdateProduct_TogglesActive(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	p, err := app.CreateProduct(ctx, &model.ProductCreateRequest{SKU: "SKU-1", Name: "Widget", PriceCents: 1000})
	require.NoError(t, err)

	inactive := false
	price := int64(1500)
	updated, err := app.UpdateProduct(ctx, p.ID, &model.ProductUpdateRequest{Active: &inactive, PriceCents: &price})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, int64(1500), updated.PriceCents)

	// Inactive products remain readable.
	got, err := app.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
