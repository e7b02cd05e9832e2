// Package memory implements every repository interface on top of a
// single in-process store serialized to a JSON file after each mutation.
// It mirrors the flat-file backend of the original back-office: one
// struct holding all tables plus a monotonic counter per table, guarded
// by one mutex. Each exported operation is a single atomic step; there
// are no cross-table transactions, same as the SQL backend.
package memory

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rendyfeb/logistics/model"
)

type database struct {
	Customers  []model.Customer    `json:"customers"`
	Products   []model.Product     `json:"products"`
	Warehouses []model.Warehouse   `json:"warehouses"`
	Stock      []model.StockRecord `json:"stock"`
	Orders     []model.Order       `json:"orders"`
	Shipments  []model.Shipment    `json:"shipments"`
	Invoices   []model.Invoice     `json:"invoices"`
	Counters   map[string]uint64   `json:"counters"`
}

func newDatabase() *database {
	return &database{
		Customers:  []model.Customer{},
		Products:   []model.Product{},
		Warehouses: []model.Warehouse{},
		Stock:      []model.StockRecord{},
		Orders:     []model.Order{},
		Shipments:  []model.Shipment{},
		Invoices:   []model.Invoice{},
		Counters:   map[string]uint64{},
	}
}

type Store struct {
	mu   sync.Mutex
	path string
	db   *database
}

// NewStore returns a purely in-memory store with no file persistence.
func NewStore() *Store {
	return &Store{db: newDatabase()}
}

// Open loads the store from path, creating the file when absent.
func Open(path string) (*Store, error) {
	s := &Store{path: path, db: newDatabase()}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := s.commitLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, s.db); err != nil {
		return nil, err
	}
	if s.db.Counters == nil {
		s.db.Counters = map[string]uint64{}
	}
	return s, nil
}

// commitLocked serializes the store to disk. Callers must hold mu.
func (s *Store) commitLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// nextIDLocked assigns the next id for a table. Callers must hold mu.
func (s *Store) nextIDLocked(table string) uint64 {
	s.db.Counters[table]++
	return s.db.Counters[table]
}

func (s *Store) Customers() *CustomerStore   { return &CustomerStore{s: s} }
func (s *Store) Products() *ProductStore     { return &ProductStore{s: s} }
func (s *Store) Warehouses() *WarehouseStore { return &WarehouseStore{s: s} }
func (s *Store) StockLedger() *StockStore    { return &StockStore{s: s} }
func (s *Store) Orders() *OrderStore         { return &OrderStore{s: s} }
func (s *Store) Shipments() *ShipmentStore   { return &ShipmentStore{s: s} }
func (s *Store) Invoices() *InvoiceStore     { return &InvoiceStore{s: s} }

func cloneOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func cloneShipment(sh model.Shipment) model.Shipment {
	tracking := make([]model.TrackingEvent, len(sh.Tracking))
	copy(tracking, sh.Tracking)
	sh.Tracking = tracking
	return sh
}

func paginate[T any](items []T, p model.Pagination) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
