package shipment

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	shipmentrepo "github.com/rendyfeb/logistics/repository/shipment"
	"github.com/rendyfeb/logistics/thirdparty/rabbitmq"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"github.com/rendyfeb/logistics/utils/metrics"
	"go.uber.org/zap"
)

// OrderGateway is the slice of the order engine the shipment machine is
// allowed to touch. Order status is owned by the order engine; shipments
// never write it directly.
type OrderGateway interface {
	GetOrder(ctx context.Context, id uint64) (*model.Order, error)
	MarkShipped(ctx context.Context, id uint64) error
	MarkDelivered(ctx context.Context, id uint64) error
	Reallocate(ctx context.Context, id uint64) error
}

type ShipmentApp interface {
	CreateShipment(ctx context.Context, req *model.ShipmentCreateRequest) (*model.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, id uint64, req *model.ShipmentStatusRequest) (*model.Shipment, error)
	CancelShipment(ctx context.Context, id uint64) (*model.ShipmentStatusResponse, error)
	GetShipment(ctx context.Context, id uint64) (*model.Shipment, error)
	ListShipments(ctx context.Context, f model.ShipmentFilter) ([]model.Shipment, int64, error)
}

type shipmentAppImpl struct {
	shipmentRepo shipmentrepo.ShipmentRepository
	orders       OrderGateway
	publisher    *rabbitmq.Publisher
}

func NewShipmentApp(shipmentRepo shipmentrepo.ShipmentRepository, orders OrderGateway, publisher *rabbitmq.Publisher) ShipmentApp {
	return &shipmentAppImpl{shipmentRepo: shipmentRepo, orders: orders, publisher: publisher}
}

// CreateShipment requires an allocated order and flips it to shipped.
// The reservation made at order creation carries through untouched.
func (s *shipmentAppImpl) CreateShipment(ctx context.Context, req *model.ShipmentCreateRequest) (*model.Shipment, error) {
	o, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != constant.OrderStatusAllocated {
		return nil, errors.SetCustomError(constant.ErrOrderInvalidStatus)
	}

	now := time.Now().UTC()
	sh := &model.Shipment{
		OrderID:           o.ID,
		Status:            constant.ShipmentStatusCreated,
		OriginWarehouseID: o.WarehouseID,
		Destination: model.Destination{
			Address: req.Destination.Address,
			Lat:     req.Destination.Lat,
			Lng:     req.Destination.Lng,
		},
		Tracking:  []model.TrackingEvent{{TS: now, Status: constant.ShipmentStatusCreated}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.shipmentRepo.Insert(ctx, sh)
	if err != nil {
		logger.Error("[CreateShipment] insert", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	sh.ID = id

	if err := s.orders.MarkShipped(ctx, o.ID); err != nil {
		logger.Error("[CreateShipment] mark order shipped", zap.Uint64("order_id", o.ID), zap.Error(err))
		return nil, err
	}

	logger.Info("[CreateShipment] shipment created", zap.Uint64("shipment_id", id), zap.Uint64("order_id", o.ID))
	return sh, nil
}

func (s *shipmentAppImpl) UpdateShipmentStatus(ctx context.Context, id uint64, req *model.ShipmentStatusRequest) (*model.Shipment, error) {
	sh, err := s.findShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == "" {
		return nil, errors.SetCustomError(constant.ErrStatusRequired)
	}

	next := constant.ShipmentStatus(req.Status)
	if !constant.ShipmentTransitionAllowed(sh.Status, next) {
		return nil, errors.SetCustomError(constant.ErrTransitionNotAllowed)
	}

	now := time.Now().UTC()
	if err := s.shipmentRepo.SetStatusAndTrack(ctx, id, next, req.Note, now); err != nil {
		logger.Error("[UpdateShipmentStatus] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	sh.Status = next
	sh.Tracking = append(sh.Tracking, model.TrackingEvent{TS: now, Status: next, Note: req.Note})
	sh.UpdatedAt = now

	if next == constant.ShipmentStatusDelivered {
		// Best effort: the shipment transition stands even when the
		// order callback cannot apply.
		if err := s.orders.MarkDelivered(ctx, sh.OrderID); err != nil {
			logger.Warn("[UpdateShipmentStatus] mark order delivered", zap.Uint64("order_id", sh.OrderID), zap.Error(err))
		}
		metrics.ShipmentsDeliveredTotal.Inc()
		if err := s.publisher.PublishShipmentDelivered(sh.ID, sh.OrderID); err != nil {
			logger.Error("[UpdateShipmentStatus] publish event", zap.Error(err))
		}
	}
	return sh, nil
}

// CancelShipment cancels any non-delivered shipment and, when the linked
// order is currently shipped, hands it back to allocated. Stock is not
// touched: the order's reservation was never released by shipping.
func (s *shipmentAppImpl) CancelShipment(ctx context.Context, id uint64) (*model.ShipmentStatusResponse, error) {
	sh, err := s.findShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status == constant.ShipmentStatusDelivered {
		return nil, errors.SetCustomError(constant.ErrShipmentDelivered)
	}

	now := time.Now().UTC()
	if err := s.shipmentRepo.SetStatusAndTrack(ctx, id, constant.ShipmentStatusCancelled, "", now); err != nil {
		logger.Error("[CancelShipment] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	o, err := s.orders.GetOrder(ctx, sh.OrderID)
	if err == nil && o.Status == constant.OrderStatusShipped {
		if err := s.orders.Reallocate(ctx, o.ID); err != nil {
			logger.Error("[CancelShipment] reallocate order", zap.Uint64("order_id", o.ID), zap.Error(err))
			return nil, err
		}
	}

	return &model.ShipmentStatusResponse{ID: id, Status: constant.ShipmentStatusCancelled}, nil
}

func (s *shipmentAppImpl) GetShipment(ctx context.Context, id uint64) (*model.Shipment, error) {
	return s.findShipment(ctx, id)
}

func (s *shipmentAppImpl) findShipment(ctx context.Context, id uint64) (*model.Shipment, error) {
	sh, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Shipment] find", zap.Uint64("shipment_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if sh == nil {
		return nil, errors.SetCustomError(constant.ErrShipmentNotFound)
	}
	return sh, nil
}

func (s *shipmentAppImpl) ListShipments(ctx context.Context, f model.ShipmentFilter) ([]model.Shipment, int64, error) {
	shipments, total, err := s.shipmentRepo.List(ctx, f)
	if err != nil {
		logger.Error("[ListShipments] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return shipments, total, nil
}
