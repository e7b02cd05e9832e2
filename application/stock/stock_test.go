package stock_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	appstock "github.com/rendyfeb/logistics/application/stock"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	stockrepo "github.com/rendyfeb/logistics/repository/stock"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *memory.Store
	app   appstock.StockApp

	warehouseA uint64
	warehouseB uint64
	product    uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()

	wa, err := store.Warehouses().Insert(ctx, &model.Warehouse{Name: "Central", City: "Jakarta", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	wb, err := store.Warehouses().Insert(ctx, &model.Warehouse{Name: "East", City: "Surabaya", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	p, err := store.Products().Insert(ctx, &model.Product{SKU: "SKU-1", Name: "Widget", PriceCents: 1000, Active: true, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	return &fixture{
		store:      store,
		app:        appstock.NewStockApp(store.StockLedger(), store.Warehouses(), store.Products()),
		warehouseA: wa,
		warehouseB: wb,
		product:    p,
	}
}

func (f *fixture) qty(t *testing.T, warehouseID uint64) int64 {
	t.Helper()
	records, err := f.store.StockLedger().List(context.Background(), model.StockFilter{WarehouseID: warehouseID, ProductID: f.product})
	require.NoError(t, err)
	if len(records) == 0 {
		return 0
	}
	return records[0].Qty
}

func TestAdjust_CreatesRecordLazily(t *testing.T) {
	f := newFixture(t)

	rec, err := f.app.Adjust(context.Background(), &model.StockAdjustRequest{
		WarehouseID: f.warehouseA, ProductID: f.product, Delta: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.Qty)

	rec, err = f.app.Adjust(context.Background(), &model.StockAdjustRequest{
		WarehouseID: f.warehouseA, ProductID: f.product, Delta: -4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), rec.Qty)
}

func TestAdjust_InsufficientLeavesQtyUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: 5})
	require.NoError(t, err)

	_, err = f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: -8})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrStockInsufficient))
	assert.Equal(t, int64(5), f.qty(t, f.warehouseA))
}

func TestAdjust_UnknownWarehouse(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Adjust(context.Background(), &model.StockAdjustRequest{
		WarehouseID: 999, ProductID: f.product, Delta: 1,
	})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrWarehouseNotFound))
}

func TestAdjust_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Adjust(context.Background(), &model.StockAdjustRequest{
		WarehouseID: f.warehouseA, ProductID: 999, Delta: 1,
	})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrProductNotFound))
}

func TestMove_TransfersBetweenWarehouses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: 10})
	require.NoError(t, err)

	res, err := f.app.Move(ctx, &model.StockMoveRequest{
		FromWarehouseID: f.warehouseA, ToWarehouseID: f.warehouseB, ProductID: f.product, Qty: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.From.Qty)
	assert.Equal(t, int64(4), res.To.Qty)
}

func TestMove_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: 3})
	require.NoError(t, err)

	_, err = f.app.Move(ctx, &model.StockMoveRequest{
		FromWarehouseID: f.warehouseA, ToWarehouseID: f.warehouseB, ProductID: f.product, Qty: 5,
	})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrStockInsufficient))
	assert.Equal(t, int64(3), f.qty(t, f.warehouseA))
	assert.Equal(t, int64(0), f.qty(t, f.warehouseB))
}

// failingCredit wraps the real ledger and fails every credit into one
// warehouse, to exercise the compensation path.
type failingCredit struct {
	stockrepo.StockRepository
	failWarehouseID uint64
}

func (f *failingCredit) Adjust(ctx context.Context, warehouseID, productID uint64, delta int64) (*model.StockRecord, error) {
	if warehouseID == f.failWarehouseID && delta > 0 {
		return nil, fmt.Errorf("credit rejected")
	}
	return f.StockRepository.Adjust(ctx, warehouseID, productID, delta)
}

func TestMove_CompensatesDebitWhenCreditFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: 10})
	require.NoError(t, err)

	broken := appstock.NewStockApp(
		&failingCredit{StockRepository: f.store.StockLedger(), failWarehouseID: f.warehouseB},
		f.store.Warehouses(), f.store.Products())

	_, err = broken.Move(ctx, &model.StockMoveRequest{
		FromWarehouseID: f.warehouseA, ToWarehouseID: f.warehouseB, ProductID: f.product, Qty: 4,
	})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrInternal))

	// The debit was re-credited, so total stock is unchanged.
	assert.Equal(t, int64(10), f.qty(t, f.warehouseA))
	assert.Equal(t, int64(0), f.qty(t, f.warehouseB))
}

func TestList_FiltersByWarehouseAndProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseA, ProductID: f.product, Delta: 7})
	require.NoError(t, err)
	_, err = f.app.Adjust(ctx, &model.StockAdjustRequest{WarehouseID: f.warehouseB, ProductID: f.product, Delta: 2})
	require.NoError(t, err)

	all, err := f.app.List(ctx, model.StockFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := f.app.List(ctx, model.StockFilter{WarehouseID: f.warehouseA})
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, int64(7), onlyA[0].Qty)
}
