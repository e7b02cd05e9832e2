package stock

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	cerr "github.com/rendyfeb/logistics/utils/errors"
)

// StockRepository owns the (warehouse, product) -> qty ledger. Adjust is
// the only authoritative guard against negative stock: the conditional
// apply and the qty check are a single atomic statement per record.
type StockRepository interface {
	GetOrCreate(ctx context.Context, warehouseID, productID uint64) (*model.StockRecord, error)
	Adjust(ctx context.Context, warehouseID, productID uint64, delta int64) (*model.StockRecord, error)
	List(ctx context.Context, filter model.StockFilter) ([]model.StockRecord, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

func (r *SQL) find(ctx context.Context, warehouseID, productID uint64) (*model.StockRecord, error) {
	var rec model.StockRecord
	err := r.conn.GetContext(ctx, &rec,
		"SELECT * FROM stock WHERE warehouse_id = ? AND product_id = ?", warehouseID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetOrCreate inserts a zero-qty record on first reference. A concurrent
// insert losing the uniqueness race resolves to the surviving row.
func (r *SQL) GetOrCreate(ctx context.Context, warehouseID, productID uint64) (*model.StockRecord, error) {
	if _, err := r.conn.ExecContext(ctx,
		"INSERT IGNORE INTO stock (warehouse_id, product_id, qty) VALUES (?, ?, 0)",
		warehouseID, productID); err != nil {
		return nil, err
	}
	rec, err := r.find(ctx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return rec, nil
}

// Adjust applies qty += delta to the single record for the pair. A
// negative delta that would drive qty below zero fails with
// ErrStockInsufficient and leaves the record unchanged.
func (r *SQL) Adjust(ctx context.Context, warehouseID, productID uint64, delta int64) (*model.StockRecord, error) {
	rec, err := r.GetOrCreate(ctx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return rec, nil
	}

	res, err := r.conn.ExecContext(ctx,
		"UPDATE stock SET qty = qty + ? WHERE warehouse_id = ? AND product_id = ? AND qty + ? >= 0",
		delta, warehouseID, productID, delta)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, cerr.SetCustomError(constant.ErrStockInsufficient)
	}
	return r.find(ctx, warehouseID, productID)
}

func (r *SQL) List(ctx context.Context, filter model.StockFilter) ([]model.StockRecord, error) {
	where := "1 = 1"
	args := []interface{}{}
	if filter.WarehouseID != 0 {
		where += " AND warehouse_id = ?"
		args = append(args, filter.WarehouseID)
	}
	if filter.ProductID != 0 {
		where += " AND product_id = ?"
		args = append(args, filter.ProductID)
	}

	records := make([]model.StockRecord, 0)
	if err := r.conn.SelectContext(ctx, &records, "SELECT * FROM stock WHERE "+where, args...); err != nil {
		return nil, err
	}
	return records, nil
}
