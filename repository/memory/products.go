package memory

import (
	"context"
	"strings"
	"time"

	"github.com/rendyfeb/logistics/model"
)

type ProductStore struct {
	s *Store
}

func (r *ProductStore) Insert(_ context.Context, p *model.Product) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := *p
	rec.ID = r.s.nextIDLocked("products")
	r.s.db.Products = append(r.s.db.Products, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *ProductStore) FindByID(_ context.Context, id uint64) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Products {
		if r.s.db.Products[i].ID == id {
			p := r.s.db.Products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductStore) FindByIDs(_ context.Context, ids []uint64) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	products := make([]model.Product, 0, len(ids))
	for i := range r.s.db.Products {
		if wanted[r.s.db.Products[i].ID] {
			products = append(products, r.s.db.Products[i])
		}
	}
	return products, nil
}

func (r *ProductStore) IsSKUTaken(_ context.Context, sku string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Products {
		p := &r.s.db.Products[i]
		if p.DeletedAt == nil && strings.EqualFold(p.SKU, sku) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductStore) List(_ context.Context, q string, p model.Pagination) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q = strings.ToLower(q)
	matched := make([]model.Product, 0)
	for i := range r.s.db.Products {
		prod := r.s.db.Products[i]
		if prod.DeletedAt != nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(prod.Name), q) && !strings.Contains(strings.ToLower(prod.SKU), q) {
			continue
		}
		matched = append(matched, prod)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *ProductStore) Update(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Products {
		if r.s.db.Products[i].ID == p.ID {
			r.s.db.Products[i] = *p
			return r.s.commitLocked()
		}
	}
	return nil
}

func (r *ProductStore) SoftDelete(_ context.Context, id uint64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Products {
		if r.s.db.Products[i].ID == id {
			deletedAt := at
			r.s.db.Products[i].DeletedAt = &deletedAt
			r.s.db.Products[i].UpdatedAt = at
			return r.s.commitLocked()
		}
	}
	return nil
}
