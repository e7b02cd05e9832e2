package customer

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	customerrepo "github.com/rendyfeb/logistics/repository/customer"
	orderrepo "github.com/rendyfeb/logistics/repository/order"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"go.uber.org/zap"
)

type CustomerApp interface {
	CreateCustomer(ctx context.Context, req *model.CustomerCreateRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id uint64, req *model.CustomerUpdateRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id uint64) error
	GetCustomer(ctx context.Context, id uint64) (*model.Customer, error)
	ListCustomers(ctx context.Context, q string, p model.Pagination) ([]model.Customer, int64, error)
}

type customerAppImpl struct {
	customerRepo customerrepo.CustomerRepository
	orderRepo    orderrepo.OrderRepository
}

func NewCustomerApp(customerRepo customerrepo.CustomerRepository, orderRepo orderrepo.OrderRepository) CustomerApp {
	return &customerAppImpl{customerRepo: customerRepo, orderRepo: orderRepo}
}

func (s *customerAppImpl) CreateCustomer(ctx context.Context, req *model.CustomerCreateRequest) (*model.Customer, error) {
	taken, err := s.customerRepo.IsEmailTaken(ctx, req.Email, 0)
	if err != nil {
		logger.Error("[CreateCustomer] email check", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if taken {
		return nil, errors.SetCustomError(constant.ErrEmailTaken)
	}

	now := time.Now().UTC()
	c := &model.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Status:    constant.CustomerStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.customerRepo.Insert(ctx, c)
	if err != nil {
		logger.Error("[CreateCustomer] insert", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	c.ID = id

	logger.Info("[CreateCustomer] customer created", zap.Uint64("customer_id", id))
	return c, nil
}

func (s *customerAppImpl) UpdateCustomer(ctx context.Context, id uint64, req *model.CustomerUpdateRequest) (*model.Customer, error) {
	c, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != c.Email {
		taken, err := s.customerRepo.IsEmailTaken(ctx, *req.Email, id)
		if err != nil {
			logger.Error("[UpdateCustomer] email check", zap.Error(err))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if taken {
			return nil, errors.SetCustomError(constant.ErrEmailTaken)
		}
		c.Email = *req.Email
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Status != nil {
		c.Status = constant.CustomerStatus(*req.Status)
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.customerRepo.Update(ctx, c); err != nil {
		logger.Error("[UpdateCustomer] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return c, nil
}

// DeleteCustomer refuses while the customer still has allocated or
// shipped orders.
func (s *customerAppImpl) DeleteCustomer(ctx context.Context, id uint64) error {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return err
	}

	active, err := s.orderRepo.HasActiveOrders(ctx, id)
	if err != nil {
		logger.Error("[DeleteCustomer] active order check", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if active {
		return errors.SetCustomError(constant.ErrCustomerHasOrders)
	}

	if err := s.customerRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		logger.Error("[DeleteCustomer] persist", zap.Error(err))
		return errors.SetCustomError(constant.ErrInternal)
	}
	logger.Info("[DeleteCustomer] customer deleted", zap.Uint64("customer_id", id))
	return nil
}

func (s *customerAppImpl) GetCustomer(ctx context.Context, id uint64) (*model.Customer, error) {
	return s.findCustomer(ctx, id)
}

func (s *customerAppImpl) findCustomer(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Customer] find", zap.Uint64("customer_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if c == nil || c.DeletedAt != nil {
		return nil, errors.SetCustomError(constant.ErrCustomerNotFound)
	}
	return c, nil
}

func (s *customerAppImpl) ListCustomers(ctx context.Context, q string, p model.Pagination) ([]model.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, q, p)
	if err != nil {
		logger.Error("[ListCustomers] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return customers, total, nil
}
