package model

import (
	"time"

	"github.com/rendyfeb/logistics/constant"
)

type OrderItem struct {
	ProductID uint64 `db:"product_id" json:"productId"`
	Qty       int64  `db:"qty" json:"qty"`
}

type Order struct {
	ID          uint64               `db:"id" json:"id"`
	CustomerID  uint64               `db:"customer_id" json:"customerId"`
	WarehouseID uint64               `db:"warehouse_id" json:"warehouseId"`
	Items       []OrderItem          `json:"items"`
	Status      constant.OrderStatus `db:"status" json:"status"`
	TotalCents  int64                `db:"total_cents" json:"totalCents"`
	CreatedAt   time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updatedAt"`
}

type OrderItemRequest struct {
	ProductID uint64 `json:"productId" validate:"required,gt=0"`
	Qty       int64  `json:"qty" validate:"required,gt=0"`
}

type OrderCreateRequest struct {
	CustomerID  uint64             `json:"customerId" validate:"required,gt=0"`
	WarehouseID uint64             `json:"warehouseId" validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderUpdateRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderFilter struct {
	Status constant.OrderStatus
	Page   int
	Limit  int
}

// OrderView is an order with optional embedded relations, produced by
// list/get endpoints when ?include= is present.
type OrderView struct {
	Order
	Customer *Customer       `json:"customer,omitempty"`
	Items    []OrderItemView `json:"items"`
}

type OrderItemView struct {
	OrderItem
	Product *Product `json:"product,omitempty"`
}

type OrderStatusResponse struct {
	ID     uint64               `json:"id"`
	Status constant.OrderStatus `json:"status"`
}
