package model

import (
	"time"

	"github.com/rendyfeb/logistics/constant"
)

type Destination struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// TrackingEvent is one entry of a shipment's append-only tracking history.
type TrackingEvent struct {
	TS     time.Time               `db:"ts" json:"ts"`
	Status constant.ShipmentStatus `db:"status" json:"status"`
	Note   string                  `db:"note" json:"note,omitempty"`
}

type Shipment struct {
	ID                uint64                  `db:"id" json:"id"`
	OrderID           uint64                  `db:"order_id" json:"orderId"`
	Status            constant.ShipmentStatus `db:"status" json:"status"`
	OriginWarehouseID uint64                  `db:"origin_warehouse_id" json:"originWarehouseId"`
	Destination       Destination             `json:"destination"`
	Tracking          []TrackingEvent         `json:"tracking"`
	CreatedAt         time.Time               `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time               `db:"updated_at" json:"updatedAt"`
}

type DestinationRequest struct {
	Address string   `json:"address" validate:"required"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type ShipmentCreateRequest struct {
	OrderID     uint64             `json:"orderId" validate:"required,gt=0"`
	Destination DestinationRequest `json:"destination" validate:"required"`
}

type ShipmentStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type ShipmentFilter struct {
	Status  constant.ShipmentStatus
	OrderID uint64
	Page    int
	Limit   int
}

type ShipmentStatusResponse struct {
	ID     uint64                  `json:"id"`
	Status constant.ShipmentStatus `json:"status"`
}
