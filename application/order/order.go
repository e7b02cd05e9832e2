package order

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	customerrepo "github.com/rendyfeb/logistics/repository/customer"
	orderrepo "github.com/rendyfeb/logistics/repository/order"
	productrepo "github.com/rendyfeb/logistics/repository/product"
	stockrepo "github.com/rendyfeb/logistics/repository/stock"
	warehouserepo "github.com/rendyfeb/logistics/repository/warehouse"
	"github.com/rendyfeb/logistics/thirdparty/rabbitmq"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"github.com/rendyfeb/logistics/utils/metrics"
	"go.uber.org/zap"
)

// OrderApp drives the order lifecycle: allocated -> {shipped, cancelled},
// shipped -> {delivered, allocated}. It is the only writer of order
// status; the shipment and invoice engines call back into it instead of
// touching orders directly.
//
// Reservation across multiple line items is not transactional: each
// per-item adjustment is its own atomic step, and a failure mid-sequence
// leaves earlier reservations applied. Move-style compensation was
// deliberately not added here to keep parity with the behavior operators
// already rely on; such failures surface as internal errors.
type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.OrderCreateRequest) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uint64, req *model.OrderUpdateRequest) (*model.Order, error)
	CancelOrder(ctx context.Context, id uint64) (*model.OrderStatusResponse, error)
	GetOrder(ctx context.Context, id uint64) (*model.Order, error)
	ListOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, int64, error)
	View(ctx context.Context, o *model.Order, include []string) (*model.OrderView, error)

	// Status callbacks used by the shipment engine.
	MarkShipped(ctx context.Context, id uint64) error
	MarkDelivered(ctx context.Context, id uint64) error
	Reallocate(ctx context.Context, id uint64) error
}

type orderAppImpl struct {
	orderRepo     orderrepo.OrderRepository
	stockRepo     stockrepo.StockRepository
	customerRepo  customerrepo.CustomerRepository
	productRepo   productrepo.ProductRepository
	warehouseRepo warehouserepo.WarehouseRepository
	publisher     *rabbitmq.Publisher
}

func NewOrderApp(
	orderRepo orderrepo.OrderRepository,
	stockRepo stockrepo.StockRepository,
	customerRepo customerrepo.CustomerRepository,
	productRepo productrepo.ProductRepository,
	warehouseRepo warehouserepo.WarehouseRepository,
	publisher *rabbitmq.Publisher,
) OrderApp {
	return &orderAppImpl{
		orderRepo:     orderRepo,
		stockRepo:     stockRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
	}
}

func (s *orderAppImpl) findSellableProduct(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Order] find product", zap.Uint64("product_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !p.Sellable() {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}
	return p, nil
}

// totalCents recomputes the order total from current product prices;
// prices are never snapshotted per line item.
func (s *orderAppImpl) totalCents(ctx context.Context, items []model.OrderItem) (int64, error) {
	seen := make(map[uint64]bool, len(items))
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("[Order] load prices", zap.Error(err))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	prices := make(map[uint64]int64, len(products))
	for i := range products {
		prices[products[i].ID] = products[i].PriceCents
	}
	var total int64
	for _, it := range items {
		total += it.Qty * prices[it.ProductID]
	}
	return total, nil
}

func toItems(reqItems []model.OrderItemRequest) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(reqItems))
	for _, it := range reqItems {
		items = append(items, model.OrderItem{ProductID: it.ProductID, Qty: it.Qty})
	}
	return items
}

func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.OrderCreateRequest) (*model.Order, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		logger.Error("[CreateOrder] find customer", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !customer.Active() {
		metrics.OrdersFailedTotal.WithLabelValues("customer_not_found").Inc()
		return nil, errors.SetCustomError(constant.ErrCustomerNotFound)
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		logger.Error("[CreateOrder] find warehouse", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !warehouse.Active() {
		metrics.OrdersFailedTotal.WithLabelValues("warehouse_not_found").Inc()
		return nil, errors.SetCustomError(constant.ErrWarehouseNotFound)
	}

	items := toItems(req.Items)

	// Advisory pre-check: fail fast on obviously short stock. The
	// authoritative guard is the conditional apply inside Adjust.
	for _, it := range items {
		if _, err := s.findSellableProduct(ctx, it.ProductID); err != nil {
			metrics.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
			return nil, err
		}
		rec, err := s.stockRepo.GetOrCreate(ctx, req.WarehouseID, it.ProductID)
		if err != nil {
			logger.Error("[CreateOrder] stock lookup", zap.Error(err))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if rec.Qty < it.Qty {
			logger.Info("[CreateOrder] insufficient stock",
				zap.Uint64("warehouse_id", req.WarehouseID),
				zap.Uint64("product_id", it.ProductID),
				zap.Int64("need", it.Qty), zap.Int64("available", rec.Qty))
			metrics.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, errors.SetCustomError(constant.ErrStockInsufficient)
		}
	}

	// Reserve per item. Adjustments already applied are not rolled back
	// when a later one fails; see the interface comment.
	start := time.Now()
	for _, it := range items {
		if _, err := s.stockRepo.Adjust(ctx, req.WarehouseID, it.ProductID, -it.Qty); err != nil {
			logger.Error("[CreateOrder] reserve stock",
				zap.Uint64("warehouse_id", req.WarehouseID),
				zap.Uint64("product_id", it.ProductID), zap.Error(err))
			metrics.OrdersFailedTotal.WithLabelValues("reservation_failed").Inc()
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}
	metrics.StockReserveLatency.Observe(time.Since(start).Seconds())

	total, err := s.totalCents(ctx, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &model.Order{
		CustomerID:  req.CustomerID,
		WarehouseID: req.WarehouseID,
		Items:       items,
		Status:      constant.OrderStatusAllocated,
		TotalCents:  total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.orderRepo.Insert(ctx, o)
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	o.ID = id

	metrics.OrdersCreatedTotal.Inc()
	logger.Info("[CreateOrder] order allocated", zap.Uint64("order_id", id), zap.Int64("total_cents", total))

	if err := s.publisher.PublishOrderAllocated(o); err != nil {
		logger.Error("[CreateOrder] publish event", zap.Error(err))
	}
	return o, nil
}

func (s *orderAppImpl) UpdateOrder(ctx context.Context, id uint64, req *model.OrderUpdateRequest) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateOrder] find order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if o == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if o.Status != constant.OrderStatusAllocated {
		return nil, errors.SetCustomError(constant.ErrOrderNotModifiable)
	}

	newItems := toItems(req.Items)

	// Both maps sum duplicate lines for the same product, so deltas are
	// computed against the full reserved quantity.
	currentQty := make(map[uint64]int64, len(o.Items))
	for _, it := range o.Items {
		currentQty[it.ProductID] += it.Qty
	}
	newQty := make(map[uint64]int64, len(newItems))
	for _, it := range newItems {
		newQty[it.ProductID] += it.Qty
	}

	// Union of old and new product ids, old ones first, in stable order.
	union := make([]uint64, 0, len(o.Items)+len(newItems))
	inUnion := make(map[uint64]bool)
	for _, it := range o.Items {
		if !inUnion[it.ProductID] {
			inUnion[it.ProductID] = true
			union = append(union, it.ProductID)
		}
	}
	for _, it := range newItems {
		if !inUnion[it.ProductID] {
			inUnion[it.ProductID] = true
			union = append(union, it.ProductID)
		}
	}

	// Pre-check positive deltas only; released quantities cannot fail,
	// and dropping a product that went inactive must stay possible.
	for _, pid := range union {
		delta := newQty[pid] - currentQty[pid]
		if delta <= 0 {
			continue
		}
		if _, err := s.findSellableProduct(ctx, pid); err != nil {
			return nil, err
		}
		rec, err := s.stockRepo.GetOrCreate(ctx, o.WarehouseID, pid)
		if err != nil {
			logger.Error("[UpdateOrder] stock lookup", zap.Error(err))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if rec.Qty < delta {
			metrics.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, errors.SetCustomError(constant.ErrStockInsufficient)
		}
	}

	for _, pid := range union {
		delta := newQty[pid] - currentQty[pid]
		if delta == 0 {
			continue
		}
		if _, err := s.stockRepo.Adjust(ctx, o.WarehouseID, pid, -delta); err != nil {
			logger.Error("[UpdateOrder] apply delta",
				zap.Uint64("order_id", id), zap.Uint64("product_id", pid),
				zap.Int64("delta", delta), zap.Error(err))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	total, err := s.totalCents(ctx, newItems)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.orderRepo.UpdateItemsAndTotal(ctx, id, newItems, total, now); err != nil {
		logger.Error("[UpdateOrder] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	o.Items = newItems
	o.TotalCents = total
	o.UpdatedAt = now
	return o, nil
}

func (s *orderAppImpl) CancelOrder(ctx context.Context, id uint64) (*model.OrderStatusResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[CancelOrder] find order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if o == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if o.Status != constant.OrderStatusAllocated {
		return nil, errors.SetCustomError(constant.ErrOrderNotCancelable)
	}

	// Release the full reservation, one record at a time.
	for _, it := range o.Items {
		if _, err := s.stockRepo.Adjust(ctx, o.WarehouseID, it.ProductID, it.Qty); err != nil {
			logger.Error("[CancelOrder] release stock",
				zap.Uint64("order_id", id), zap.Uint64("product_id", it.ProductID), zap.Error(err))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.orderRepo.SetStatus(ctx, id, constant.OrderStatusCancelled, time.Now().UTC()); err != nil {
		logger.Error("[CancelOrder] set status", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	metrics.OrdersCancelledTotal.Inc()
	if err := s.publisher.PublishOrderCancelled(o); err != nil {
		logger.Error("[CancelOrder] publish event", zap.Error(err))
	}
	return &model.OrderStatusResponse{ID: id, Status: constant.OrderStatusCancelled}, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, id uint64) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[GetOrder] find order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if o == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	return o, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, f)
	if err != nil {
		logger.Error("[ListOrders] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, total, nil
}

// View embeds related records requested through ?include= on read
// endpoints: "customer" and "items.product" are supported.
func (s *orderAppImpl) View(ctx context.Context, o *model.Order, include []string) (*model.OrderView, error) {
	view := &model.OrderView{Order: *o}
	view.Items = make([]model.OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		view.Items = append(view.Items, model.OrderItemView{OrderItem: it})
	}

	for _, inc := range include {
		switch inc {
		case "customer":
			c, err := s.customerRepo.FindByID(ctx, o.CustomerID)
			if err != nil {
				logger.Error("[OrderView] find customer", zap.Error(err))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
			view.Customer = c
		case "items.product":
			ids := make([]uint64, 0, len(o.Items))
			for _, it := range o.Items {
				ids = append(ids, it.ProductID)
			}
			products, err := s.productRepo.FindByIDs(ctx, ids)
			if err != nil {
				logger.Error("[OrderView] find products", zap.Error(err))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
			byID := make(map[uint64]*model.Product, len(products))
			for i := range products {
				byID[products[i].ID] = &products[i]
			}
			for i := range view.Items {
				view.Items[i].Product = byID[view.Items[i].ProductID]
			}
		}
	}
	return view, nil
}

func (s *orderAppImpl) setStatusFrom(ctx context.Context, id uint64, from, to constant.OrderStatus) error {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Order] status transition lookup", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if o == nil {
		return errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if o.Status != from {
		return errors.SetCustomError(constant.ErrOrderInvalidStatus)
	}
	if err := s.orderRepo.SetStatus(ctx, id, to, time.Now().UTC()); err != nil {
		logger.Error("[Order] set status", zap.String("to", string(to)), zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// MarkShipped flips an allocated order to shipped. The reservation made
// at creation stays in place.
func (s *orderAppImpl) MarkShipped(ctx context.Context, id uint64) error {
	return s.setStatusFrom(ctx, id, constant.OrderStatusAllocated, constant.OrderStatusShipped)
}

func (s *orderAppImpl) MarkDelivered(ctx context.Context, id uint64) error {
	return s.setStatusFrom(ctx, id, constant.OrderStatusShipped, constant.OrderStatusDelivered)
}

// Reallocate reverts a shipped order to allocated after its shipment is
// cancelled. Stock is untouched: shipping never released the
// reservation.
func (s *orderAppImpl) Reallocate(ctx context.Context, id uint64) error {
	return s.setStatusFrom(ctx, id, constant.OrderStatusShipped, constant.OrderStatusAllocated)
}
