package memory

import (
	"context"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	cerr "github.com/rendyfeb/logistics/utils/errors"
)

type StockStore struct {
	s *Store
}

func (r *StockStore) findLocked(warehouseID, productID uint64) *model.StockRecord {
	for i := range r.s.db.Stock {
		rec := &r.s.db.Stock[i]
		if rec.WarehouseID == warehouseID && rec.ProductID == productID {
			return rec
		}
	}
	return nil
}

func (r *StockStore) getOrCreateLocked(warehouseID, productID uint64) *model.StockRecord {
	if rec := r.findLocked(warehouseID, productID); rec != nil {
		return rec
	}
	r.s.db.Stock = append(r.s.db.Stock, model.StockRecord{
		ID:          r.s.nextIDLocked("stock"),
		WarehouseID: warehouseID,
		ProductID:   productID,
		Qty:         0,
	})
	return &r.s.db.Stock[len(r.s.db.Stock)-1]
}

func (r *StockStore) GetOrCreate(_ context.Context, warehouseID, productID uint64) (*model.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := *r.getOrCreateLocked(warehouseID, productID)
	return &rec, r.s.commitLocked()
}

// Adjust performs the read-check-apply for one record under the store
// lock, so concurrent negative adjustments cannot both pass the check.
func (r *StockStore) Adjust(_ context.Context, warehouseID, productID uint64, delta int64) (*model.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := r.getOrCreateLocked(warehouseID, productID)
	if rec.Qty+delta < 0 {
		return nil, cerr.SetCustomError(constant.ErrStockInsufficient)
	}
	rec.Qty += delta
	out := *rec
	return &out, r.s.commitLocked()
}

func (r *StockStore) List(_ context.Context, filter model.StockFilter) ([]model.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := make([]model.StockRecord, 0)
	for i := range r.s.db.Stock {
		rec := r.s.db.Stock[i]
		if filter.WarehouseID != 0 && rec.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.ProductID != 0 && rec.ProductID != filter.ProductID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
