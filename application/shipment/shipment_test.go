package shipment_test

import (
	"context"
	"testing"
	"time"

	apporder "github.com/rendyfeb/logistics/application/order"
	appshipment "github.com/rendyfeb/logistics/application/shipment"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *memory.Store
	orders apporder.OrderApp
	app    appshipment.ShipmentApp
}

func newFixture(t *testing.T) (*fixture, *model.Order) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()

	c, err := store.Customers().Insert(ctx, &model.Customer{Name: "Alice", Email: "alice@example.com", Status: constant.CustomerStatusActive, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	w, err := store.Warehouses().Insert(ctx, &model.Warehouse{Name: "Central", City: "Jakarta", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	p, err := store.Products().Insert(ctx, &model.Product{SKU: "SKU-A", Name: "Widget", PriceCents: 1000, Active: true, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = store.StockLedger().Adjust(ctx, w, p, 10)
	require.NoError(t, err)

	orders := apporder.NewOrderApp(store.Orders(), store.StockLedger(), store.Customers(), store.Products(), store.Warehouses(), nil)
	o, err := orders.CreateOrder(ctx, &model.OrderCreateRequest{
		CustomerID:  c,
		WarehouseID: w,
		Items:       []model.OrderItemRequest{{ProductID: p, Qty: 2}},
	})
	require.NoError(t, err)

	return &fixture{
		store:  store,
		orders: orders,
		app:    appshipment.NewShipmentApp(store.Shipments(), orders, nil),
	}, o
}

func destination() model.DestinationRequest {
	return model.DestinationRequest{Address: "Jl. Sudirman 1, Jakarta"}
}

func TestCreateShipment_FlipsOrderToShipped(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	assert.Equal(t, constant.ShipmentStatusCreated, sh.Status)
	assert.Equal(t, o.WarehouseID, sh.OriginWarehouseID)
	require.Len(t, sh.Tracking, 1)
	assert.Equal(t, constant.ShipmentStatusCreated, sh.Tracking[0].Status)

	current, err := f.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusShipped, current.Status)
}

func TestCreateShipment_OrderMustBeAllocated(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	_, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	// The order is now shipped; a second shipment is rejected.
	_, err = f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrOrderInvalidStatus))
}

func TestUpdateShipmentStatus_RejectsSkippedSteps(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	_, err = f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{Status: "delivered"})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrTransitionNotAllowed))
}

func TestUpdateShipmentStatus_EmptyStatus(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	_, err = f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrStatusRequired))
}

func TestDeliveryChain_MarksOrderDelivered(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	_, err = f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{Status: "out_for_delivery", Note: "courier picked up"})
	require.NoError(t, err)
	delivered, err := f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{Status: "delivered"})
	require.NoError(t, err)

	assert.Equal(t, constant.ShipmentStatusDelivered, delivered.Status)
	require.Len(t, delivered.Tracking, 3)
	assert.Equal(t, "courier picked up", delivered.Tracking[1].Note)

	current, err := f.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusDelivered, current.Status)
}

func TestCancelShipment_RevertsShippedOrder(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)

	res, err := f.app.CancelShipment(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.ShipmentStatusCancelled, res.Status)

	current, err := f.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusAllocated, current.Status)
}

func TestCancelShipment_DeliveredIsFinal(t *testing.T) {
	f, o := newFixture(t)
	ctx := context.Background()

	sh, err := f.app.CreateShipment(ctx, &model.ShipmentCreateRequest{OrderID: o.ID, Destination: destination()})
	require.NoError(t, err)
	_, err = f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{Status: "out_for_delivery"})
	require.NoError(t, err)
	_, err = f.app.UpdateShipmentStatus(ctx, sh.ID, &model.ShipmentStatusRequest{Status: "delivered"})
	require.NoError(t, err)

	_, err = f.app.CancelShipment(ctx, sh.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrShipmentDelivered))
}

func TestGetShipment_NotFound(t *testing.T) {
	f, _ := newFixture(t)

	_, err := f.app.GetShipment(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrShipmentNotFound))
}
