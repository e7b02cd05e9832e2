package model

import "time"

type Product struct {
	ID         uint64     `db:"id" json:"id"`
	SKU        string     `db:"sku" json:"sku"`
	Name       string     `db:"name" json:"name"`
	PriceCents int64      `db:"price_cents" json:"priceCents"`
	Active     bool       `db:"active" json:"active"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deletedAt"`
}

// Sellable reports whether the product may appear on new order lines.
func (p *Product) Sellable() bool {
	return p != nil && p.DeletedAt == nil && p.Active
}

type ProductCreateRequest struct {
	SKU        string `json:"sku" validate:"required"`
	Name       string `json:"name" validate:"required"`
	PriceCents int64  `json:"priceCents" validate:"required,gt=0"`
}

type ProductUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	PriceCents *int64  `json:"priceCents" validate:"omitempty,gt=0"`
	Active     *bool   `json:"active"`
}
