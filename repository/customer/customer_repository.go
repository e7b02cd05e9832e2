package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/model"
)

// CustomerRepository lookups return (nil, nil) when no row matches.
type CustomerRepository interface {
	Insert(ctx context.Context, c *model.Customer) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Customer, error)
	IsEmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error)
	List(ctx context.Context, q string, p model.Pagination) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) error
	SoftDelete(ctx context.Context, id uint64, at time.Time) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewCustomerRepository(conn *sqlx.DB) CustomerRepository {
	return &SQL{conn: conn}
}

func (r *SQL) Insert(ctx context.Context, c *model.Customer) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO customer (name, email, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		c.Name, c.Email, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Customer, error) {
	var c model.Customer
	err := r.conn.GetContext(ctx, &c, "SELECT * FROM customer WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQL) IsEmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.conn.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM customer WHERE email = ? AND deleted_at IS NULL AND id != ?", email, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQL) List(ctx context.Context, q string, p model.Pagination) ([]model.Customer, int64, error) {
	where := "deleted_at IS NULL"
	args := []interface{}{}
	if q != "" {
		where += " AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM customer WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	customers := make([]model.Customer, 0)
	query := "SELECT * FROM customer WHERE " + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *SQL) Update(ctx context.Context, c *model.Customer) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE customer SET name = ?, email = ?, status = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Email, c.Status, c.UpdatedAt, c.ID)
	return err
}

func (r *SQL) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE customer SET deleted_at = ?, updated_at = ? WHERE id = ?", at, at, id)
	return err
}
