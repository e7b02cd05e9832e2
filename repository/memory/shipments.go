package memory

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

type ShipmentStore struct {
	s *Store
}

func (r *ShipmentStore) Insert(_ context.Context, sh *model.Shipment) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := cloneShipment(*sh)
	rec.ID = r.s.nextIDLocked("shipments")
	r.s.db.Shipments = append(r.s.db.Shipments, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *ShipmentStore) findLocked(id uint64) *model.Shipment {
	for i := range r.s.db.Shipments {
		if r.s.db.Shipments[i].ID == id {
			return &r.s.db.Shipments[i]
		}
	}
	return nil
}

func (r *ShipmentStore) FindByID(_ context.Context, id uint64) (*model.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh := r.findLocked(id)
	if sh == nil {
		return nil, nil
	}
	out := cloneShipment(*sh)
	return &out, nil
}

func (r *ShipmentStore) SetStatusAndTrack(_ context.Context, id uint64, status constant.ShipmentStatus, note string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh := r.findLocked(id)
	if sh == nil {
		return nil
	}
	sh.Status = status
	sh.Tracking = append(sh.Tracking, model.TrackingEvent{TS: at, Status: status, Note: note})
	sh.UpdatedAt = at
	return r.s.commitLocked()
}

func (r *ShipmentStore) List(_ context.Context, f model.ShipmentFilter) ([]model.Shipment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]model.Shipment, 0)
	for i := len(r.s.db.Shipments) - 1; i >= 0; i-- {
		sh := r.s.db.Shipments[i]
		if f.Status != "" && sh.Status != f.Status {
			continue
		}
		if f.OrderID != 0 && sh.OrderID != f.OrderID {
			continue
		}
		matched = append(matched, cloneShipment(sh))
	}
	p := model.Pagination{Page: f.Page, Limit: f.Limit}
	return paginate(matched, p), int64(len(matched)), nil
}
