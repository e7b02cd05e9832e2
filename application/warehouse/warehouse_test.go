package warehouse_test

import (
	"context"
	"testing"

	appwarehouse "github.com/rendyfeb/logistics/application/warehouse"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*memory.Store, appwarehouse.WarehouseApp) {
	t.Helper()
	store := memory.NewStore()
	return store, appwarehouse.NewWarehouseApp(store.Warehouses(), store.StockLedger())
}

func TestCreateAndGetWarehouse(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	w, err := app.CreateWarehouse(ctx, &model.WarehouseCreateRequest{Name: "Central", City: "Jakarta"})
	require.NoError(t, err)

	got, err := app.GetWarehouse(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jakarta", got.City)
}

func TestDeleteWarehouse_GuardedByStockOnHand(t *testing.T) {
	store, app := newApp(t)
	ctx := context.Background()

	w, err := app.CreateWarehouse(ctx, &model.WarehouseCreateRequest{Name: "Central", City: "Jakarta"})
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, w.ID, 1, 3)
	require.NoError(t, err)

	err = app.DeleteWarehouse(ctx, w.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrWarehouseHasStock))

	_, err = store.StockLedger().Adjust(ctx, w.ID, 1, -3)
	require.NoError(t, err)
	require.NoError(t, app.DeleteWarehouse(ctx, w.ID))

	_, err = app.GetWarehouse(ctx, w.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrWarehouseNotFound))
}

func TestGetWarehouseStock(t *testing.T) {
	store, app := newApp(t)
	ctx := context.Background()

	w, err := app.CreateWarehouse(ctx, &model.WarehouseCreateRequest{Name: "Central", City: "Jakarta"})
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, w.ID, 1, 4)
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, w.ID, 2, 6)
	require.NoError(t, err)

	records, err := app.GetWarehouseStock(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
