package model

import (
	"time"

	"github.com/rendyfeb/logistics/constant"
)

type Customer struct {
	ID        uint64                  `db:"id" json:"id"`
	Name      string                  `db:"name" json:"name"`
	Email     string                  `db:"email" json:"email"`
	Status    constant.CustomerStatus `db:"status" json:"status"`
	CreatedAt time.Time               `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time               `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time              `db:"deleted_at" json:"deletedAt"`
}

// Active reports whether the customer may place orders.
func (c *Customer) Active() bool {
	return c != nil && c.DeletedAt == nil && c.Status == constant.CustomerStatusActive
}

type CustomerCreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CustomerUpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Status *string `json:"status" validate:"omitempty,oneof=active blocked"`
}
