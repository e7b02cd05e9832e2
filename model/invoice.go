package model

import (
	"time"

	"github.com/rendyfeb/logistics/constant"
)

type Invoice struct {
	ID          uint64                 `db:"id" json:"id"`
	OrderID     uint64                 `db:"order_id" json:"orderId"`
	CustomerID  uint64                 `db:"customer_id" json:"customerId"`
	AmountCents int64                  `db:"amount_cents" json:"amountCents"`
	Status      constant.InvoiceStatus `db:"status" json:"status"`
	CreatedAt   time.Time              `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time              `db:"updated_at" json:"updatedAt"`
}

type InvoiceCreateRequest struct {
	OrderID uint64 `json:"orderId" validate:"required,gt=0"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status"`
}

type InvoiceFilter struct {
	Status     constant.InvoiceStatus
	CustomerID uint64
	Page       int
	Limit      int
}
