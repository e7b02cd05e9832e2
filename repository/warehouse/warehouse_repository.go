package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/model"
)

// WarehouseRepository lookups return (nil, nil) when no row matches.
type WarehouseRepository interface {
	Insert(ctx context.Context, w *model.Warehouse) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Warehouse, error)
	List(ctx context.Context, q string, p model.Pagination) ([]model.Warehouse, int64, error)
	Update(ctx context.Context, w *model.Warehouse) error
	SoftDelete(ctx context.Context, id uint64, at time.Time) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewWarehouseRepository(conn *sqlx.DB) WarehouseRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Insert(ctx context.Context, w *model.Warehouse) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO warehouse (name, city, created_at, updated_at) VALUES (?, ?, ?, ?)",
		w.Name, w.City, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.conn.GetContext(ctx, &w, "SELECT * FROM warehouse WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SQL) List(ctx context.Context, q string, p model.Pagination) ([]model.Warehouse, int64, error) {
	where := "deleted_at IS NULL"
	args := []interface{}{}
	if q != "" {
		where += " AND (LOWER(name) LIKE ? OR LOWER(city) LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM warehouse WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	warehouses := make([]model.Warehouse, 0)
	query := "SELECT * FROM warehouse WHERE " + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &warehouses, query, args...); err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

func (r *SQL) Update(ctx context.Context, w *model.Warehouse) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE warehouse SET name = ?, city = ?, updated_at = ? WHERE id = ?",
		w.Name, w.City, w.UpdatedAt, w.ID)
	return err
}

func (r *SQL) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE warehouse SET deleted_at = ?, updated_at = ? WHERE id = ?", at, at, id)
	return err
}
