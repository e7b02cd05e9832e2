package constant

type OrderStatus string

const (
	OrderStatusAllocated OrderStatus = "allocated"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type ShipmentStatus string

const (
	ShipmentStatusCreated        ShipmentStatus = "created"
	ShipmentStatusOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusFailed         ShipmentStatus = "failed"
	ShipmentStatusCancelled      ShipmentStatus = "cancelled"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusBlocked CustomerStatus = "blocked"
)

// shipmentTransitions is the full lifecycle table; delivered, failed and
// cancelled are terminal.
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusCreated:        {ShipmentStatusOutForDelivery, ShipmentStatusCancelled},
	ShipmentStatusOutForDelivery: {ShipmentStatusDelivered, ShipmentStatusFailed, ShipmentStatusCancelled},
	ShipmentStatusDelivered:      {},
	ShipmentStatusFailed:         {},
	ShipmentStatusCancelled:      {},
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusIssued: {InvoiceStatusPaid, InvoiceStatusVoid},
	InvoiceStatusPaid:   {},
	InvoiceStatusVoid:   {},
}

// ShipmentTransitionAllowed reports whether a shipment may move from
// current to next.
func ShipmentTransitionAllowed(current, next ShipmentStatus) bool {
	for _, s := range shipmentTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// InvoiceTransitionAllowed reports whether an invoice may move from
// current to next.
func InvoiceTransitionAllowed(current, next InvoiceStatus) bool {
	for _, s := range invoiceTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}
