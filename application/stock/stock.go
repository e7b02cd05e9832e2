package stock

import (
	"context"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	productrepo "github.com/rendyfeb/logistics/repository/product"
	stockrepo "github.com/rendyfeb/logistics/repository/stock"
	warehouserepo "github.com/rendyfeb/logistics/repository/warehouse"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"github.com/rendyfeb/logistics/utils/metrics"
	"go.uber.org/zap"
)

// StockApp is the stock ledger: per-record atomic adjustments with
// insufficiency detection, and a compensated two-step move between
// warehouses.
type StockApp interface {
	Adjust(ctx context.Context, req *model.StockAdjustRequest) (*model.StockRecord, error)
	Move(ctx context.Context, req *model.StockMoveRequest) (*model.StockMoveResult, error)
	List(ctx context.Context, filter model.StockFilter) ([]model.StockRecord, error)
}

type stockAppImpl struct {
	stockRepo     stockrepo.StockRepository
	warehouseRepo warehouserepo.WarehouseRepository
	productRepo   productrepo.ProductRepository
}

func NewStockApp(stockRepo stockrepo.StockRepository, warehouseRepo warehouserepo.WarehouseRepository, productRepo productrepo.ProductRepository) StockApp {
	return &stockAppImpl{stockRepo: stockRepo, warehouseRepo: warehouseRepo, productRepo: productRepo}
}

func (s *stockAppImpl) checkWarehouse(ctx context.Context, id uint64) error {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Stock] find warehouse", zap.Uint64("warehouse_id", id), zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if w == nil || !w.Active() {
		return errors.SetCustomError(constant.ErrWarehouseNotFound)
	}
	return nil
}

// checkProduct only requires the product to be non-deleted; inactive
// products can still have their stock counted and corrected.
func (s *stockAppImpl) checkProduct(ctx context.Context, id uint64) error {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Stock] find product", zap.Uint64("product_id", id), zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil || p.DeletedAt != nil {
		return errors.SetCustomError(constant.ErrProductNotFound)
	}
	return nil
}

func (s *stockAppImpl) Adjust(ctx context.Context, req *model.StockAdjustRequest) (*model.StockRecord, error) {
	if err := s.checkWarehouse(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := s.checkProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	rec, err := s.stockRepo.Adjust(ctx, req.WarehouseID, req.ProductID, req.Delta)
	if err != nil {
		if errors.IsType(err, constant.ErrStockInsufficient) {
			metrics.StockAdjustmentsTotal.WithLabelValues("insufficient").Inc()
			return nil, err
		}
		logger.Error("[Stock] adjust", zap.Uint64("warehouse_id", req.WarehouseID),
			zap.Uint64("product_id", req.ProductID), zap.Int64("delta", req.Delta), zap.Error(err))
		metrics.StockAdjustmentsTotal.WithLabelValues("error").Inc()
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	metrics.StockAdjustmentsTotal.WithLabelValues("ok").Inc()
	return rec, nil
}

// Move debits the origin, then credits the destination. When the credit
// fails after the debit committed, the origin is re-credited before the
// error propagates, so a failed move never changes total stock.
func (s *stockAppImpl) Move(ctx context.Context, req *model.StockMoveRequest) (*model.StockMoveResult, error) {
	if err := s.checkWarehouse(ctx, req.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := s.checkWarehouse(ctx, req.ToWarehouseID); err != nil {
		return nil, err
	}
	if err := s.checkProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	from, err := s.stockRepo.Adjust(ctx, req.FromWarehouseID, req.ProductID, -req.Qty)
	if err != nil {
		if errors.IsType(err, constant.ErrStockInsufficient) {
			metrics.StockAdjustmentsTotal.WithLabelValues("insufficient").Inc()
			return nil, err
		}
		logger.Error("[Stock] move debit", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	to, err := s.stockRepo.Adjust(ctx, req.ToWarehouseID, req.ProductID, req.Qty)
	if err != nil {
		if _, rollbackErr := s.stockRepo.Adjust(ctx, req.FromWarehouseID, req.ProductID, req.Qty); rollbackErr != nil {
			logger.Error("[Stock] move compensation failed",
				zap.Uint64("warehouse_id", req.FromWarehouseID),
				zap.Uint64("product_id", req.ProductID),
				zap.Int64("qty", req.Qty), zap.Error(rollbackErr))
		}
		logger.Error("[Stock] move credit", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.StockMoveResult{From: from, To: to}, nil
}

func (s *stockAppImpl) List(ctx context.Context, filter model.StockFilter) ([]model.StockRecord, error) {
	records, err := s.stockRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[Stock] list", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return records, nil
}
