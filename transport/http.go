package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	customerapp "github.com/rendyfeb/logistics/application/customer"
	invoiceapp "github.com/rendyfeb/logistics/application/invoice"
	orderapp "github.com/rendyfeb/logistics/application/order"
	productapp "github.com/rendyfeb/logistics/application/product"
	shipmentapp "github.com/rendyfeb/logistics/application/shipment"
	stockapp "github.com/rendyfeb/logistics/application/stock"
	warehouseapp "github.com/rendyfeb/logistics/application/warehouse"
)

type RestHandler struct {
	CustomerApp  customerapp.CustomerApp
	ProductApp   productapp.ProductApp
	WarehouseApp warehouseapp.WarehouseApp
	StockApp     stockapp.StockApp
	OrderApp     orderapp.OrderApp
	ShipmentApp  shipmentapp.ShipmentApp
	InvoiceApp   invoiceapp.InvoiceApp
}

func NewTransport(rh *RestHandler) http.Handler {
	mux := mux.NewRouter()

	mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	mux.HandleFunc("/healthz", rh.Health).Methods(http.MethodGet)

	mux.HandleFunc("/customers", rh.CreateCustomer).Methods(http.MethodPost)
	mux.HandleFunc("/customers", rh.ListCustomers).Methods(http.MethodGet)
	mux.HandleFunc("/customers/{id}", rh.GetCustomer).Methods(http.MethodGet)
	mux.HandleFunc("/customers/{id}", rh.UpdateCustomer).Methods(http.MethodPatch)
	mux.HandleFunc("/customers/{id}", rh.DeleteCustomer).Methods(http.MethodDelete)

	mux.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.UpdateProduct).Methods(http.MethodPatch)
	mux.HandleFunc("/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)

	mux.HandleFunc("/warehouses", rh.CreateWarehouse).Methods(http.MethodPost)
	mux.HandleFunc("/warehouses", rh.ListWarehouses).Methods(http.MethodGet)
	mux.HandleFunc("/warehouses/{id}", rh.GetWarehouse).Methods(http.MethodGet)
	mux.HandleFunc("/warehouses/{id}", rh.UpdateWarehouse).Methods(http.MethodPatch)
	mux.HandleFunc("/warehouses/{id}", rh.DeleteWarehouse).Methods(http.MethodDelete)

	mux.HandleFunc("/stock", rh.ListStock).Methods(http.MethodGet)
	mux.HandleFunc("/stock/adjust", rh.AdjustStock).Methods(http.MethodPost)
	mux.HandleFunc("/stock/move", rh.MoveStock).Methods(http.MethodPost)

	mux.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}", rh.UpdateOrder).Methods(http.MethodPatch)
	mux.HandleFunc("/orders/{id}", rh.CancelOrder).Methods(http.MethodDelete)

	mux.HandleFunc("/shipments", rh.CreateShipment).Methods(http.MethodPost)
	mux.HandleFunc("/shipments", rh.ListShipments).Methods(http.MethodGet)
	mux.HandleFunc("/shipments/{id}", rh.GetShipment).Methods(http.MethodGet)
	mux.HandleFunc("/shipments/{id}/status", rh.UpdateShipmentStatus).Methods(http.MethodPatch)
	mux.HandleFunc("/shipments/{id}", rh.CancelShipment).Methods(http.MethodDelete)

	mux.HandleFunc("/invoices", rh.CreateInvoice).Methods(http.MethodPost)
	mux.HandleFunc("/invoices", rh.ListInvoices).Methods(http.MethodGet)
	mux.HandleFunc("/invoices/{id}", rh.GetInvoice).Methods(http.MethodGet)
	mux.HandleFunc("/invoices/{id}/status", rh.UpdateInvoiceStatus).Methods(http.MethodPatch)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(MetricsMiddleware())

	return mux
}

func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}
