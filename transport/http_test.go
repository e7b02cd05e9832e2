package transport_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	customerapp "github.com/rendyfeb/logistics/application/customer"
	invoiceapp "github.com/rendyfeb/logistics/application/invoice"
	orderapp "github.com/rendyfeb/logistics/application/order"
	productapp "github.com/rendyfeb/logistics/application/product"
	shipmentapp "github.com/rendyfeb/logistics/application/shipment"
	stockapp "github.com/rendyfeb/logistics/application/stock"
	warehouseapp "github.com/rendyfeb/logistics/application/warehouse"
	"github.com/rendyfeb/logistics/repository/memory"
	"github.com/rendyfeb/logistics/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()

	orders := orderapp.NewOrderApp(store.Orders(), store.StockLedger(), store.Customers(), store.Products(), store.Warehouses(), nil)
	handler := transport.NewTransport(&transport.RestHandler{
		CustomerApp:  customerapp.NewCustomerApp(store.Customers(), store.Orders()),
		ProductApp:   productapp.NewProductApp(store.Products(), store.StockLedger(), nil),
		WarehouseApp: warehouseapp.NewWarehouseApp(store.Warehouses(), store.StockLedger()),
		StockApp:     stockapp.NewStockApp(store.StockLedger(), store.Warehouses(), store.Products()),
		OrderApp:     orders,
		ShipmentApp:  shipmentapp.NewShipmentApp(store.Shipments(), orders, nil),
		InvoiceApp:   invoiceapp.NewInvoiceApp(store.Invoices(), orders),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res *http.Response, out interface{}) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

type idResponse struct {
	ID uint64 `json:"id"`
}

func seedBasics(t *testing.T, srv *httptest.Server) (customerID, warehouseID, productID uint64) {
	t.Helper()

	var c idResponse
	res := doJSON(t, http.MethodPost, srv.URL+"/customers", map[string]string{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &c)

	var w idResponse
	res = doJSON(t, http.MethodPost, srv.URL+"/warehouses", map[string]string{"name": "Central", "city": "Jakarta"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &w)

	var p idResponse
	res = doJSON(t, http.MethodPost, srv.URL+"/products", map[string]interface{}{"sku": "SKU-A", "name": "Widget", "priceCents": 1000})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &p)

	res = doJSON(t, http.MethodPost, srv.URL+"/stock/adjust", map[string]interface{}{
		"warehouseId": w.ID, "productId": p.ID, "delta": 10,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	return c.ID, w.ID, p.ID
}

func TestValidationErrorsReturn400WithDetails(t *testing.T) {
	srv := newServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/customers", map[string]string{"name": "Alice"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body struct {
		Code    string   `json:"code"`
		Details []string `json:"details"`
	}
	decode(t, res, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.NotEmpty(t, body.Details)
}

func TestNotFoundMapsTo404(t *testing.T) {
	srv := newServer(t)

	res := doJSON(t, http.MethodGet, srv.URL+"/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, res, &body)
	assert.Equal(t, "ORDER_NOT_FOUND", body.Code)
}

func TestInsufficientStockMapsTo409(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 50}},
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, res, &body)
	assert.Equal(t, "STOCK_INSUFFICIENT", body.Code)
}

func TestShipmentTransitionErrorMapsTo400(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	var o idResponse
	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &o)

	var sh idResponse
	res = doJSON(t, http.MethodPost, srv.URL+"/shipments", map[string]interface{}{
		"orderId":     o.ID,
		"destination": map[string]interface{}{"address": "Jl. Sudirman 1"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &sh)

	// created -> delivered skips out_for_delivery.
	res = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/shipments/%d/status", srv.URL, sh.ID), map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, res, &body)
	assert.Equal(t, "TRANSITION_NOT_ALLOWED", body.Code)
}

func TestListPaginationHeaders(t *testing.T) {
	srv := newServer(t)

	for i := 0; i < 3; i++ {
		res := doJSON(t, http.MethodPost, srv.URL+"/customers", map[string]string{
			"name":  fmt.Sprintf("Customer %d", i),
			"email": fmt.Sprintf("c%d@example.com", i),
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)
		res.Body.Close()
	}

	res := doJSON(t, http.MethodGet, srv.URL+"/customers?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "3", res.Header.Get("X-Total-Count"))
	assert.Equal(t, "2", res.Header.Get("X-Page"))
	assert.Equal(t, "2", res.Header.Get("X-Limit"))

	var customers []map[string]interface{}
	decode(t, res, &customers)
	assert.Len(t, customers, 1)
}

func TestOrderIncludeEmbedsRelations(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	var o idResponse
	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &o)

	res = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d?include=customer,items.product", srv.URL, o.ID), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view struct {
		Customer *struct {
			Name string `json:"name"`
		} `json:"customer"`
		Items []struct {
			Product *struct {
				SKU string `json:"sku"`
			} `json:"product"`
		} `json:"items"`
	}
	decode(t, res, &view)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "Alice", view.Customer.Name)
	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Items[0].Product)
	assert.Equal(t, "SKU-A", view.Items[0].Product.SKU)
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	var o idResponse
	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &o)

	var sh idResponse
	res = doJSON(t, http.MethodPost, srv.URL+"/shipments", map[string]interface{}{
		"orderId":     o.ID,
		"destination": map[string]interface{}{"address": "Jl. Sudirman 1"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &sh)

	for _, status := range []string{"out_for_delivery", "delivered"} {
		res = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/shipments/%d/status", srv.URL, sh.ID), map[string]string{"status": status})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	var inv struct {
		AmountCents int64  `json:"amountCents"`
		Status      string `json:"status"`
	}
	res = doJSON(t, http.MethodPost, srv.URL+"/invoices", map[string]interface{}{"orderId": o.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &inv)

	// 2 x 1000 total, plus 2000 flat and 10% fee.
	assert.Equal(t, int64(2000+2000+200), inv.AmountCents)
	assert.Equal(t, "issued", inv.Status)

	// A second invoice for the same order is rejected.
	res = doJSON(t, http.MethodPost, srv.URL+"/invoices", map[string]interface{}{"orderId": o.ID})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res.Body.Close()
}

func TestCancelOrderReleasesStock(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	var o idResponse
	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 4}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	decode(t, res, &o)

	res = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/orders/%d", srv.URL, o.ID), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	var records []struct {
		Qty int64 `json:"qty"`
	}
	res = doJSON(t, http.MethodGet, fmt.Sprintf("%s/stock?warehouseId=%d&productId=%d", srv.URL, warehouseID, productID), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &records)
	require.Len(t, records, 1)
	assert.Equal(t, int64(10), records[0].Qty)
}

func TestDeleteCustomerWithActiveOrders(t *testing.T) {
	srv := newServer(t)
	customerID, warehouseID, productID := seedBasics(t, srv)

	res := doJSON(t, http.MethodPost, srv.URL+"/orders", map[string]interface{}{
		"customerId":  customerID,
		"warehouseId": warehouseID,
		"items":       []map[string]interface{}{{"productId": productID, "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/customers/%d", srv.URL, customerID), nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decode(t, res, &body)
	assert.Equal(t, "CUSTOMER_HAS_ACTIVE_ORDERS", body.Code)
}

func TestStockAdjust_ZeroDelta(t *testing.T) {
	srv := newServer(t)
	_, warehouseID, productID := seedBasics(t, srv)

	// A zero delta is a valid no-op, not a validation failure.
	res := doJSON(t, http.MethodPost, srv.URL+"/stock/adjust", map[string]interface{}{
		"warehouseId": warehouseID, "productId": productID, "delta": 0,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var rec struct {
		Qty int64 `json:"qty"`
	}
	decode(t, res, &rec)
	assert.Equal(t, int64(10), rec.Qty)
}
