package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

// OrderRepository lookups return (nil, nil) when no row matches. The
// order aggregate (header + items) is written together; cross-entity
// consistency with the stock ledger is the engine's problem, not ours.
type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	UpdateItemsAndTotal(ctx context.Context, id uint64, items []model.OrderItem, totalCents int64, at time.Time) error
	SetStatus(ctx context.Context, id uint64, status constant.OrderStatus, at time.Time) error
	List(ctx context.Context, f model.OrderFilter) ([]model.Order, int64, error)
	HasActiveOrders(ctx context.Context, customerID uint64) (bool, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Insert(ctx context.Context, o *model.Order) (uint64, error) {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO `order` (customer_id, warehouse_id, status, total_cents, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		o.CustomerID, o.WarehouseID, o.Status, o.TotalCents, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for pos, it := range o.Items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_item (order_id, position, product_id, qty) VALUES (?, ?, ?, ?)",
			id, pos, it.ProductID, it.Qty); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) loadItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := r.conn.SelectContext(ctx, &items,
		"SELECT product_id, qty FROM order_item WHERE order_id = ? ORDER BY position", orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	err := r.conn.GetContext(ctx, &o, "SELECT * FROM `order` WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if o.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQL) UpdateItemsAndTotal(ctx context.Context, id uint64, items []model.OrderItem, totalCents int64, at time.Time) error {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE `order` SET total_cents = ?, updated_at = ? WHERE id = ?", totalCents, at, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM order_item WHERE order_id = ?", id); err != nil {
		return err
	}
	for pos, it := range items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_item (order_id, position, product_id, qty) VALUES (?, ?, ?, ?)",
			id, pos, it.ProductID, it.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQL) SetStatus(ctx context.Context, id uint64, status constant.OrderStatus, at time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE `order` SET status = ?, updated_at = ? WHERE id = ?", status, at, id)
	return err
}

func (r *SQL) List(ctx context.Context, f model.OrderFilter) ([]model.Order, int64, error) {
	where := "1 = 1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM `order` WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	p := model.Pagination{Page: f.Page, Limit: f.Limit}.Normalize()
	orders := make([]model.Order, 0)
	query := "SELECT * FROM `order` WHERE " + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, err
	}
	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}
	return orders, total, nil
}

func (r *SQL) HasActiveOrders(ctx context.Context, customerID uint64) (bool, error) {
	var count int64
	err := r.conn.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM `order` WHERE customer_id = ? AND status IN (?, ?)",
		customerID, constant.OrderStatusAllocated, constant.OrderStatusShipped)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
