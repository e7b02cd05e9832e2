package customer_test

import (
	"context"
	"testing"
	"time"

	appcustomer "github.com/rendyfeb/logistics/application/customer"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/repository/memory"
	cerr "github.com/rendyfeb/logistics/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*memory.Store, appcustomer.CustomerApp) {
	t.Helper()
	store := memory.NewStore()
	return store, appcustomer.NewCustomerApp(store.Customers(), store.Orders())
}

func TestCreateCustomer_DefaultsToActive(t *testing.T) {
	_, app := newApp(t)

	c, err := app.CreateCustomer(context.Background(), &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, constant.CustomerStatusActive, c.Status)
	assert.NotZero(t, c.ID)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	_, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Impostor", Email: "Alice@Example.com"})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrEmailTaken))
}

func TestUpdateCustomer_BlockAndUnblock(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	c, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	blocked := "blocked"
	updated, err := app.UpdateCustomer(ctx, c.ID, &model.CustomerUpdateRequest{Status: &blocked})
	require.NoError(t, err)
	assert.Equal(t, constant.CustomerStatusBlocked, updated.Status)
}

func TestUpdateCustomer_EmailCollision(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	_, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	b, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = app.UpdateCustomer(ctx, b.ID, &model.CustomerUpdateRequest{Email: &email})
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrEmailTaken))
}

func TestDeleteCustomer_GuardedByActiveOrders(t *testing.T) {
	store, app := newApp(t)
	ctx := context.Background()
	now := time.Now().UTC()

	c, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = store.Orders().Insert(ctx, &model.Order{
		CustomerID: c.ID, WarehouseID: 1, Status: constant.OrderStatusAllocated,
		Items: []model.OrderItem{{ProductID: 1, Qty: 1}}, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	err = app.DeleteCustomer(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrCustomerHasOrders))
}

func TestDeleteCustomer_FreesEmailForReuse(t *testing.T) {
	_, app := newApp(t)
	ctx := context.Background()

	c, err := app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NoError(t, app.DeleteCustomer(ctx, c.ID))

	// The deleted customer is gone from reads and the email can be
	// registered again.
	_, err = app.GetCustomer(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, cerr.IsType(err, constant.ErrCustomerNotFound))

	_, err = app.CreateCustomer(ctx, &model.CustomerCreateRequest{Name: "Alice II", Email: "alice@example.com"})
	require.NoError(t, err)
}
