package model

import "time"

type Warehouse struct {
	ID        uint64     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	City      string     `db:"city" json:"city"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// Active reports whether the warehouse is usable for stock operations.
func (w *Warehouse) Active() bool {
	return w != nil && w.DeletedAt == nil
}

type WarehouseCreateRequest struct {
	Name string `json:"name" validate:"required"`
	City string `json:"city" validate:"required"`
}

type WarehouseUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	City *string `json:"city" validate:"omitempty,min=1"`
}
