package memory

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

type OrderStore struct {
	s *Store
}

func (r *OrderStore) Insert(_ context.Context, o *model.Order) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := cloneOrder(*o)
	rec.ID = r.s.nextIDLocked("orders")
	r.s.db.Orders = append(r.s.db.Orders, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *OrderStore) findLocked(id uint64) *model.Order {
	for i := range r.s.db.Orders {
		if r.s.db.Orders[i].ID == id {
			return &r.s.db.Orders[i]
		}
	}
	return nil
}

func (r *OrderStore) FindByID(_ context.Context, id uint64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o := r.findLocked(id)
	if o == nil {
		return nil, nil
	}
	out := cloneOrder(*o)
	return &out, nil
}

func (r *OrderStore) UpdateItemsAndTotal(_ context.Context, id uint64, items []model.OrderItem, totalCents int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o := r.findLocked(id)
	if o == nil {
		return nil
	}
	o.Items = make([]model.OrderItem, len(items))
	copy(o.Items, items)
	o.TotalCents = totalCents
	o.UpdatedAt = at
	return r.s.commitLocked()
}

func (r *OrderStore) SetStatus(_ context.Context, id uint64, status constant.OrderStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o := r.findLocked(id)
	if o == nil {
		return nil
	}
	o.Status = status
	o.UpdatedAt = at
	return r.s.commitLocked()
}

func (r *OrderStore) List(_ context.Context, f model.OrderFilter) ([]model.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Newest first, matching the SQL backend's created_at DESC ordering.
	matched := make([]model.Order, 0)
	for i := len(r.s.db.Orders) - 1; i >= 0; i-- {
		o := r.s.db.Orders[i]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		matched = append(matched, cloneOrder(o))
	}
	p := model.Pagination{Page: f.Page, Limit: f.Limit}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *OrderStore) HasActiveOrders(_ context.Context, customerID uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Orders {
		o := &r.s.db.Orders[i]
		if o.CustomerID != customerID {
			continue
		}
		if o.Status == constant.OrderStatusAllocated || o.Status == constant.OrderStatusShipped {
			return true, nil
		}
	}
	return false, nil
}
