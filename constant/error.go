package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrValidation
	ErrStatusRequired
	ErrCustomerNotFound
	ErrProductNotFound
	ErrWarehouseNotFound
	ErrOrderNotFound
	ErrShipmentNotFound
	ErrInvoiceNotFound
	ErrStockInsufficient
	ErrOrderNotModifiable
	ErrOrderNotCancelable
	ErrOrderInvalidStatus
	ErrShipmentDelivered
	ErrOrderAlreadyInvoiced
	ErrTransitionNotAllowed
	ErrSKUTaken
	ErrEmailTaken
	ErrCustomerHasOrders
	ErrProductHasStock
	ErrWarehouseHasStock
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "internal error",
	ErrValidation:           "validation error",
	ErrStatusRequired:       "status is required",
	ErrCustomerNotFound:     "customer not found or inactive",
	ErrProductNotFound:      "product not found or inactive",
	ErrWarehouseNotFound:    "warehouse not found",
	ErrOrderNotFound:        "order not found",
	ErrShipmentNotFound:     "shipment not found",
	ErrInvoiceNotFound:      "invoice not found",
	ErrStockInsufficient:    "insufficient stock",
	ErrOrderNotModifiable:   "order is not modifiable",
	ErrOrderNotCancelable:   "order is not cancelable",
	ErrOrderInvalidStatus:   "order is not in a valid status",
	ErrShipmentDelivered:    "shipment already delivered",
	ErrOrderAlreadyInvoiced: "order already has an invoice",
	ErrTransitionNotAllowed: "status transition not allowed",
	ErrSKUTaken:             "sku already exists",
	ErrEmailTaken:           "email already exists",
	ErrCustomerHasOrders:    "customer has active orders",
	ErrProductHasStock:      "product has stock on hand",
	ErrWarehouseHasStock:    "warehouse has stock on hand",
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "OK",
	ErrInternal:             "INTERNAL_ERROR",
	ErrValidation:           "VALIDATION_ERROR",
	ErrStatusRequired:       "STATUS_REQUIRED",
	ErrCustomerNotFound:     "CUSTOMER_NOT_FOUND",
	ErrProductNotFound:      "PRODUCT_NOT_FOUND",
	ErrWarehouseNotFound:    "WAREHOUSE_NOT_FOUND",
	ErrOrderNotFound:        "ORDER_NOT_FOUND",
	ErrShipmentNotFound:     "SHIPMENT_NOT_FOUND",
	ErrInvoiceNotFound:      "INVOICE_NOT_FOUND",
	ErrStockInsufficient:    "STOCK_INSUFFICIENT",
	ErrOrderNotModifiable:   "ORDER_NOT_MODIFIABLE",
	ErrOrderNotCancelable:   "ORDER_NOT_CANCELABLE",
	ErrOrderInvalidStatus:   "ORDER_INVALID_STATUS",
	ErrShipmentDelivered:    "SHIPMENT_DELIVERED",
	ErrOrderAlreadyInvoiced: "ORDER_ALREADY_INVOICED",
	ErrTransitionNotAllowed: "TRANSITION_NOT_ALLOWED",
	ErrSKUTaken:             "SKU_TAKEN",
	ErrEmailTaken:           "EMAIL_TAKEN",
	ErrCustomerHasOrders:    "CUSTOMER_HAS_ACTIVE_ORDERS",
	ErrProductHasStock:      "PRODUCT_HAS_STOCK",
	ErrWarehouseHasStock:    "WAREHOUSE_HAS_STOCK",
}

// Transition errors map to 400 rather than 409; existing API consumers
// depend on that asymmetry.
var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrValidation:           http.StatusBadRequest,
	ErrStatusRequired:       http.StatusBadRequest,
	ErrCustomerNotFound:     http.StatusNotFound,
	ErrProductNotFound:      http.StatusNotFound,
	ErrWarehouseNotFound:    http.StatusNotFound,
	ErrOrderNotFound:        http.StatusNotFound,
	ErrShipmentNotFound:     http.StatusNotFound,
	ErrInvoiceNotFound:      http.StatusNotFound,
	ErrStockInsufficient:    http.StatusConflict,
	ErrOrderNotModifiable:   http.StatusConflict,
	ErrOrderNotCancelable:   http.StatusConflict,
	ErrOrderInvalidStatus:   http.StatusConflict,
	ErrShipmentDelivered:    http.StatusConflict,
	ErrOrderAlreadyInvoiced: http.StatusConflict,
	ErrTransitionNotAllowed: http.StatusBadRequest,
	ErrSKUTaken:             http.StatusConflict,
	ErrEmailTaken:           http.StatusConflict,
	ErrCustomerHasOrders:    http.StatusConflict,
	ErrProductHasStock:      http.StatusConflict,
	ErrWarehouseHasStock:    http.StatusConflict,
}
