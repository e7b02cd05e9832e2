package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	productrepo "github.com/rendyfeb/logistics/repository/product"
	stockrepo "github.com/rendyfeb/logistics/repository/stock"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

type ProductApp interface {
	CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.ProductUpdateRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
	GetProduct(ctx context.Context, id uint64) (*model.Product, error)
	ListProducts(ctx context.Context, q string, p model.Pagination) ([]model.Product, int64, error)
}

type productAppImpl struct {
	productRepo productrepo.ProductRepository
	stockRepo   stockrepo.StockRepository
	cache       *redis.Client
}

// NewProductApp accepts a nil cache; reads then always hit the repository.
func NewProductApp(productRepo productrepo.ProductRepository, stockRepo stockrepo.StockRepository, cache *redis.Client) ProductApp {
	return &productAppImpl{productRepo: productRepo, stockRepo: stockRepo, cache: cache}
}

func cacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.Product, error) {
	taken, err := s.productRepo.IsSKUTaken(ctx, req.SKU)
	if err != nil {
		logger.Error("[CreateProduct] sku check", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if taken {
		return nil, errors.SetCustomError(constant.ErrSKUTaken)
	}

	now := time.Now().UTC()
	p := &model.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.productRepo.Insert(ctx, p)
	if err != nil {
		logger.Error("[CreateProduct] insert", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	p.ID = id

	logger.Info("[CreateProduct] product created", zap.Uint64("product_id", id), zap.String("sku", p.SKU))
	return p, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.ProductUpdateRequest) (*model.Product, error) {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, p); err != nil {
		logger.Error("[UpdateProduct] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	s.invalidate(ctx, id)
	return p, nil
}

// DeleteProduct refuses while any warehouse still holds stock of the
// product.
func (s *productAppImpl) DeleteProduct(ctx context.Context, id uint64) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}

	records, err := s.stockRepo.List(ctx, model.StockFilter{ProductID: id})
	if err != nil {
		logger.Error("[DeleteProduct] stock check", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	for _, rec := range records {
		if rec.Qty > 0 {
			return errors.SetCustomError(constant.ErrProductHasStock)
		}
	}

	if err := s.productRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		logger.Error("[DeleteProduct] persist", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	s.invalidate(ctx, id)
	logger.Info("[DeleteProduct] product deleted", zap.Uint64("product_id", id))
	return nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(id)).Result()
		if err == nil {
			var p model.Product
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return &p, nil
			}
		} else if err != redis.Nil {
			logger.Warn("[GetProduct] cache read", zap.Error(err))
		}
	}

	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(ctx, cacheKey(id), raw, cacheTTL).Err(); err != nil {
				logger.Warn("[GetProduct] cache write", zap.Error(err))
			}
		}
	}
	return p, nil
}

func (s *productAppImpl) findProduct(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Product] find", zap.Uint64("product_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil || p.DeletedAt != nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}
	return p, nil
}

func (s *productAppImpl) invalidate(ctx context.Context, id uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.Warn("[Product] cache invalidate", zap.Uint64("product_id", id), zap.Error(err))
	}
}

func (s *productAppImpl) ListProducts(ctx context.Context, q string, p model.Pagination) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, q, p)
	if err != nil {
		logger.Error("[ListProducts] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return products, total, nil
}
