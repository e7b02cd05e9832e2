package product

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/model"
)

// ProductRepository lookups return (nil, nil) when no row matches.
type ProductRepository interface {
	Insert(ctx context.Context, p *model.Product) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]model.Product, error)
	IsSKUTaken(ctx context.Context, sku string) (bool, error)
	List(ctx context.Context, q string, p model.Pagination) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uint64, at time.Time) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Insert(ctx context.Context, p *model.Product) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO product (sku, name, price_cents, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.SKU, p.Name, p.PriceCents, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	err := r.conn.GetContext(ctx, &p, "SELECT * FROM product WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQL) FindByIDs(ctx context.Context, ids []uint64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	query, args, err := sqlx.In("SELECT * FROM product WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = r.conn.Rebind(query)

	products := make([]model.Product, 0, len(ids))
	if err := r.conn.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SQL) IsSKUTaken(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.conn.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM product WHERE sku = ? AND deleted_at IS NULL", sku)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQL) List(ctx context.Context, q string, p model.Pagination) ([]model.Product, int64, error) {
	where := "deleted_at IS NULL"
	args := []interface{}{}
	if q != "" {
		where += " AND (LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM product WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0)
	query := "SELECT * FROM product WHERE " + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *SQL) Update(ctx context.Context, p *model.Product) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE product SET name = ?, price_cents = ?, active = ?, updated_at = ? WHERE id = ?",
		p.Name, p.PriceCents, p.Active, p.UpdatedAt, p.ID)
	return err
}

func (r *SQL) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE product SET deleted_at = ?, updated_at = ? WHERE id = ?", at, at, id)
	return err
}
