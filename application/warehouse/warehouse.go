package warehouse

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	stockrepo "github.com/rendyfeb/logistics/repository/stock"
	warehouserepo "github.com/rendyfeb/logistics/repository/warehouse"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"go.uber.org/zap"
)

type WarehouseApp interface {
	CreateWarehouse(ctx context.Context, req *model.WarehouseCreateRequest) (*model.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uint64, req *model.WarehouseUpdateRequest) (*model.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id uint64) error
	GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error)
	GetWarehouseStock(ctx context.Context, id uint64) ([]model.StockRecord, error)
	ListWarehouses(ctx context.Context, q string, p model.Pagination) ([]model.Warehouse, int64, error)
}

type warehouseAppImpl struct {
	warehouseRepo warehouserepo.WarehouseRepository
	stockRepo     stockrepo.StockRepository
}

func NewWarehouseApp(warehouseRepo warehouserepo.WarehouseRepository, stockRepo stockrepo.StockRepository) WarehouseApp {
	return &warehouseAppImpl{warehouseRepo: warehouseRepo, stockRepo: stockRepo}
}

func (s *warehouseAppImpl) CreateWarehouse(ctx context.Context, req *model.WarehouseCreateRequest) (*model.Warehouse, error) {
	now := time.Now().UTC()
	w := &model.Warehouse{
		Name:      req.Name,
		City:      req.City,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.warehouseRepo.Insert(ctx, w)
	if err != nil {
		logger.Error("[CreateWarehouse] insert", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	w.ID = id

	logger.Info("[CreateWarehouse] warehouse created", zap.Uint64("warehouse_id", id))
	return w, nil
}

func (s *warehouseAppImpl) UpdateWarehouse(ctx context.Context, id uint64, req *model.WarehouseUpdateRequest) (*model.Warehouse, error) {
	w, err := s.findWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.City != nil {
		w.City = *req.City
	}
	w.UpdatedAt = time.Now().UTC()

	if err := s.warehouseRepo.Update(ctx, w); err != nil {
		logger.Error("[UpdateWarehouse] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return w, nil
}

// DeleteWarehouse refuses while the warehouse still holds any stock.
func (s *warehouseAppImpl) DeleteWarehouse(ctx context.Context, id uint64) error {
	if _, err := s.findWarehouse(ctx, id); err != nil {
		return err
	}

	records, err := s.stockRepo.List(ctx, model.StockFilter{WarehouseID: id})
	if err != nil {
		logger.Error("[DeleteWarehouse] stock check", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	for _, rec := range records {
		if rec.Qty > 0 {
			return errors.SetCustomError(constant.ErrWarehouseHasStock)
		}
	}

	if err := s.warehouseRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		logger.Error("[DeleteWarehouse] persist", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	logger.Info("[DeleteWarehouse] warehouse deleted", zap.Uint64("warehouse_id", id))
	return nil
}

func (s *warehouseAppImpl) GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error) {
	return s.findWarehouse(ctx, id)
}

func (s *warehouseAppImpl) GetWarehouseStock(ctx context.Context, id uint64) ([]model.StockRecord, error) {
	if _, err := s.findWarehouse(ctx, id); err != nil {
		return nil, err
	}
	records, err := s.stockRepo.List(ctx, model.StockFilter{WarehouseID: id})
	if err != nil {
		logger.Error("[GetWarehouseStock] list", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return records, nil
}

func (s *warehouseAppImpl) findWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Warehouse] find", zap.Uint64("warehouse_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !w.Active() {
		return nil, errors.SetCustomError(constant.ErrWarehouseNotFound)
	}
	return w, nil
}

func (s *warehouseAppImpl) ListWarehouses(ctx context.Context, q string, p model.Pagination) ([]model.Warehouse, int64, error) {
	warehouses, total, err := s.warehouseRepo.List(ctx, q, p)
	if err != nil {
		logger.Error("[ListWarehouses] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return warehouses, total, nil
}
