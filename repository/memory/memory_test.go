package memory_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	now := time.Now().UTC()

	store, err := memory.Open(path)
	require.NoError(t, err)

	id, err := store.Customers().Insert(ctx, &model.Customer{Name: "Alice", Email: "alice@example.com", Status: constant.CustomerStatusActive, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, 1, 1, 9)
	require.NoError(t, err)

	reopened, err := memory.Open(path)
	require.NoError(t, err)

	c, err := reopened.Customers().FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Alice", c.Name)

	records, err := reopened.StockLedger().List(ctx, model.StockFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(9), records[0].Qty)

	// Counters survive too: the next customer id continues the sequence.
	next, err := reopened.Customers().Insert(ctx, &model.Customer{Name: "Bob", Email: "bob@example.com", Status: constant.CustomerStatusActive, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}

func TestFindByID_MissingReturnsNilNil(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	c, err := store.Customers().FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, c)

	o, err := store.Orders().FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestAdjust_ConcurrentDecrementsNeverGoNegative(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.StockLedger().Adjust(ctx, 1, 1, 30)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	insufficient := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.StockLedger().Adjust(ctx, 1, 1, -1); err != nil {
				mu.Lock()
				if cerr.IsType(err, constant.ErrStockInsufficient) {
					insufficient++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	records, err := store.StockLedger().List(ctx, model.StockFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].Qty)
	assert.Equal(t, 20, insufficient)
}

func TestOrderList_NewestFirstWithPagination(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_, err := store.Orders().Insert(ctx, &model.Order{
			CustomerID: 1, WarehouseID: 1, Status: constant.OrderStatusAllocated,
			Items: []model.OrderItem{{ProductID: 1, Qty: 1}}, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	page, total, err := store.Orders().List(ctx, model.OrderFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(5), page[0].ID)
	assert.Equal(t, uint64(4), page[1].ID)

	last, _, err := store.Orders().List(ctx, model.OrderFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, uint64(1), last[0].ID)
}

func TestShipmentTracking_AppendOnly(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	id, err := store.Shipments().Insert(ctx, &model.Shipment{
		OrderID: 1, Status: constant.ShipmentStatusCreated,
		Tracking:  []model.TrackingEvent{{TS: now, Status: constant.ShipmentStatusCreated}},
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	require.NoError(t, store.Shipments().SetStatusAndTrack(ctx, id, constant.ShipmentStatusOutForDelivery, "picked up", now.Add(time.Minute)))

	sh, err := store.Shipments().FindByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, sh.Tracking, 2)
	assert.Equal(t, constant.ShipmentStatusOutForDelivery, sh.Status)
	assert.Equal(t, "picked up", sh.Tracking[1].Note)

	// Mutating the returned copy does not leak into the store.
	sh.Tracking[0].Note = "tampered"
	fresh, err := store.Shipments().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, fresh.Tracking[0].Note)
}
