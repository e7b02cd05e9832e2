package invoice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

// InvoiceRepository lookups return (nil, nil) when no row matches. The
// order_id column is unique, enforcing at most one invoice per order.
type InvoiceRepository interface {
	Insert(ctx context.Context, inv *model.Invoice) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID uint64) (*model.Invoice, error)
	SetStatus(ctx context.Context, id uint64, status constant.InvoiceStatus, at time.Time) error
	List(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewInvoiceRepository(conn *sqlx.DB) InvoiceRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Insert(ctx context.Context, inv *model.Invoice) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO invoice (order_id, customer_id, amount_cents, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		inv.OrderID, inv.CustomerID, inv.AmountCents, inv.Status, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.conn.GetContext(ctx, &inv, "SELECT * FROM invoice WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *SQL) FindByOrderID(ctx context.Context, orderID uint64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.conn.GetContext(ctx, &inv, "SELECT * FROM invoice WHERE order_id = ?", orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *SQL) SetStatus(ctx context.Context, id uint64, status constant.InvoiceStatus, at time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE invoice SET status = ?, updated_at = ? WHERE id = ?", status, at, id)
	return err
}

func (r *SQL) List(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, int64, error) {
	where := "1 = 1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.CustomerID != 0 {
		where += " AND customer_id = ?"
		args = append(args, f.CustomerID)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoice WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	p := model.Pagination{Page: f.Page, Limit: f.Limit}.Normalize()
	invoices := make([]model.Invoice, 0)
	query := "SELECT * FROM invoice WHERE " + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}
