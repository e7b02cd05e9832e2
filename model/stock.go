package model

// StockRecord tracks on-hand quantity for one (warehouse, product) pair.
// Records are created lazily with qty 0 on first reference and qty never
// goes negative.
type StockRecord struct {
	ID          uint64 `db:"id" json:"id"`
	WarehouseID uint64 `db:"warehouse_id" json:"warehouseId"`
	ProductID   uint64 `db:"product_id" json:"productId"`
	Qty         int64  `db:"qty" json:"qty"`
}

type StockFilter struct {
	WarehouseID uint64
	ProductID   uint64
}

type StockAdjustRequest struct {
	WarehouseID uint64 `json:"warehouseId" validate:"required,gt=0"`
	ProductID   uint64 `json:"productId" validate:"required,gt=0"`
	Delta       int64  `json:"delta"`
}

type StockMoveRequest struct {
	FromWarehouseID uint64 `json:"fromWarehouseId" validate:"required,gt=0"`
	ToWarehouseID   uint64 `json:"toWarehouseId" validate:"required,gt=0"`
	ProductID       uint64 `json:"productId" validate:"required,gt=0"`
	Qty             int64  `json:"qty" validate:"required,gt=0"`
}

type StockMoveResult struct {
	From *StockRecord `json:"from"`
	To   *StockRecord `json:"to"`
}
