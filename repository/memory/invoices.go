package memory

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
)

type InvoiceStore struct {
	s *Store
}

func (r *InvoiceStore) Insert(_ context.Context, inv *model.Invoice) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := *inv
	rec.ID = r.s.nextIDLocked("invoices")
	r.s.db.Invoices = append(r.s.db.Invoices, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *InvoiceStore) FindByID(_ context.Context, id uint64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Invoices {
		if r.s.db.Invoices[i].ID == id {
			inv := r.s.db.Invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InvoiceStore) FindByOrderID(_ context.Context, orderID uint64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Invoices {
		if r.s.db.Invoices[i].OrderID == orderID {
			inv := r.s.db.Invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InvoiceStore) SetStatus(_ context.Context, id uint64, status constant.InvoiceStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Invoices {
		if r.s.db.Invoices[i].ID == id {
			r.s.db.Invoices[i].Status = status
			r.s.db.Invoices[i].UpdatedAt = at
			return r.s.commitLocked()
		}
	}
	return nil
}

func (r *InvoiceStore) List(_ context.Context, f model.InvoiceFilter) ([]model.Invoice, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]model.Invoice, 0)
	for i := len(r.s.db.Invoices) - 1; i >= 0; i-- {
		inv := r.s.db.Invoices[i]
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.CustomerID != 0 && inv.CustomerID != f.CustomerID {
			continue
		}
		matched = append(matched, inv)
	}
	p := model.Pagination{Page: f.Page, Limit: f.Limit}
	return paginate(matched, p), int64(len(matched)), nil
}
