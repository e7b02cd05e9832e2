package memory

import (
	"context"
	"strings"
	"time"

	"github.com/rendyfeb/logistics/model"
)

type WarehouseStore struct {
	s *Store
}

func (r *WarehouseStore) Insert(_ context.Context, w *model.Warehouse) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := *w
	rec.ID = r.s.nextIDLocked("warehouses")
	r.s.db.Warehouses = append(r.s.db.Warehouses, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *WarehouseStore) FindByID(_ context.Context, id uint64) (*model.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Warehouses {
		if r.s.db.Warehouses[i].ID == id {
			w := r.s.db.Warehouses[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WarehouseStore) List(_ context.Context, q string, p model.Pagination) ([]model.Warehouse, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q = strings.ToLower(q)
	matched := make([]model.Warehouse, 0)
	for i := range r.s.db.Warehouses {
		w := r.s.db.Warehouses[i]
		if w.DeletedAt != nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(w.Name), q) && !strings.Contains(strings.ToLower(w.City), q) {
			continue
		}
		matched = append(matched, w)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *WarehouseStore) Update(_ context.Context, w *model.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Warehouses {
		if r.s.db.Warehouses[i].ID == w.ID {
			r.s.db.Warehouses[i] = *w
			return r.s.commitLocked()
		}
	}
	return nil
}

func (r *WarehouseStore) SoftDelete(_ context.Context, id uint64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Warehouses {
		if r.s.db.Warehouses[i].ID == id {
			deletedAt := at
			r.s.db.Warehouses[i].DeletedAt = &deletedAt
			r.s.db.Warehouses[i].UpdatedAt = at
			return r.s.commitLocked()
		}
	}
	return nil
}
