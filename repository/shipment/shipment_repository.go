package shipment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

// ShipmentRepository lookups return (nil, nil) when no row matches.
// Tracking is append-only; SetStatusAndTrack writes the status change and
// its tracking entry together.
type ShipmentRepository interface {
	Insert(ctx context.Context, s *model.Shipment) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*model.Shipment, error)
	SetStatusAndTrack(ctx context.Context, id uint64, status constant.ShipmentStatus, note string, at time.Time) error
	List(ctx context.Context, f model.ShipmentFilter) ([]model.Shipment, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewShipmentRepository(conn *sqlx.DB) ShipmentRepository {
	return &SQL{conn: conn}
}

type shipmentRow struct {
	ID                uint64                  `db:"id"`
	OrderID           uint64                  `db:"order_id"`
	Status            constant.ShipmentStatus `db:"status"`
	OriginWarehouseID uint64                  `db:"origin_warehouse_id"`
	DestAddress       string                  `db:"dest_address"`
	DestLat           *float64                `db:"dest_lat"`
	DestLng           *float64                `db:"dest_lng"`
	CreatedAt         time.Time               `db:"created_at"`
	UpdatedAt         time.Time               `db:"updated_at"`
}

func (row *shipmentRow) toModel() *model.Shipment {
	return &model.Shipment{
		ID:                row.ID,
		OrderID:           row.OrderID,
		Status:            row.Status,
		OriginWarehouseID: row.OriginWarehouseID,
		Destination: model.Destination{
			Address: row.DestAddress,
			Lat:     row.DestLat,
			Lng:     row.DestLng,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r *SQL) Insert(ctx context.Context, s *model.Shipment) (uint64, error) {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO shipment (order_id, status, origin_warehouse_id, dest_address, dest_lat, dest_lng, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		s.OrderID, s.Status, s.OriginWarehouseID, s.Destination.Address, s.Destination.Lat, s.Destination.Lng, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, ev := range s.Tracking {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO shipment_tracking (shipment_id, ts, status, note) VALUES (?, ?, ?, ?)",
			id, ev.TS, ev.Status, ev.Note); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) loadTracking(ctx context.Context, shipmentID uint64) ([]model.TrackingEvent, error) {
	tracking := make([]model.TrackingEvent, 0)
	err := r.conn.SelectContext(ctx, &tracking,
		"SELECT ts, status, note FROM shipment_tracking WHERE shipment_id = ? ORDER BY id", shipmentID)
	if err != nil {
		return nil, err
	}
	return tracking, nil
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Shipment, error) {
	var row shipmentRow
	err := r.conn.GetContext(ctx, &row, "SELECT * FROM shipment WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := row.toModel()
	if s.Tracking, err = r.loadTracking(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQL) SetStatusAndTrack(ctx context.Context, id uint64, status constant.ShipmentStatus, note string, at time.Time) error {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE shipment SET status = ?, updated_at = ? WHERE id = ?", status, at, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO shipment_tracking (shipment_id, ts, status, note) VALUES (?, ?, ?, ?)",
		id, at, status, note); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQL) List(ctx context.Context, f model.ShipmentFilter) ([]model.Shipment, int64, error) {
	where := "1 = 1"
	args := []interface{}{}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.OrderID != 0 {
		where += " AND order_id = ?"
		args = append(args, f.OrderID)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM shipment WHERE "+where, args...); err != nil {
		return nil, 0, err
	}

	p := model.Pagination{Page: f.Page, Limit: f.Limit}.Normalize()
	rows := make([]shipmentRow, 0)
	query := "SELECT * FROM shipment WHERE " + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset())
	if err := r.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	shipments := make([]model.Shipment, 0, len(rows))
	for i := range rows {
		s := rows[i].toModel()
		tracking, err := r.loadTracking(ctx, s.ID)
		if err != nil {
			return nil, 0, err
		}
		s.Tracking = tracking
		shipments = append(shipments, *s)
	}
	return shipments, total, nil
}
