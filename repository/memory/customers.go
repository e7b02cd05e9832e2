package memory

import (
	"context"
	"strings"
	"time"

	"github.com/rendyfeb/logistics/model"
)

type CustomerStore struct {
	s *Store
}

func (r *CustomerStore) Insert(_ context.Context, c *model.Customer) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := *c
	rec.ID = r.s.nextIDLocked("customers")
	r.s.db.Customers = append(r.s.db.Customers, rec)
	return rec.ID, r.s.commitLocked()
}

func (r *CustomerStore) FindByID(_ context.Context, id uint64) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Customers {
		if r.s.db.Customers[i].ID == id {
			c := r.s.db.Customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CustomerStore) IsEmailTaken(_ context.Context, email string, excludeID uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Customers {
		c := &r.s.db.Customers[i]
		if c.DeletedAt == nil && c.ID != excludeID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerStore) List(_ context.Context, q string, p model.Pagination) ([]model.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q = strings.ToLower(q)
	matched := make([]model.Customer, 0)
	for i := range r.s.db.Customers {
		c := r.s.db.Customers[i]
		if c.DeletedAt != nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		matched = append(matched, c)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *CustomerStore) Update(_ context.Context, c *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Customers {
		if r.s.db.Customers[i].ID == c.ID {
			r.s.db.Customers[i] = *c
			return r.s.commitLocked()
		}
	}
	return nil
}

func (r *CustomerStore) SoftDelete(_ context.Context, id uint64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.db.Customers {
		if r.s.db.Customers[i].ID == id {
			deletedAt := at
			r.s.db.Customers[i].DeletedAt = &deletedAt
			r.s.db.Customers[i].UpdatedAt = at
			return r.s.commitLocked()
		}
	}
	return nil
}
