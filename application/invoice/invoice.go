package invoice

import (
	"context"
	"time"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	invoicerepo "github.com/rendyfeb/logistics/repository/invoice"
	"github.com/rendyfeb/logistics/utils/errors"
	"github.com/rendyfeb/logistics/utils/logger"
	"github.com/rendyfeb/logistics/utils/metrics"
	"go.uber.org/zap"
)

// OrderGateway is the read-only slice of the order engine the invoice
// machine needs.
type OrderGateway interface {
	GetOrder(ctx context.Context, id uint64) (*model.Order, error)
}

type InvoiceApp interface {
	CreateInvoice(ctx context.Context, req *model.InvoiceCreateRequest) (*model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uint64, req *model.InvoiceStatusRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id uint64) (*model.Invoice, error)
	ListInvoices(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, int64, error)
}

type invoiceAppImpl struct {
	invoiceRepo invoicerepo.InvoiceRepository
	orders      OrderGateway
}

func NewInvoiceApp(invoiceRepo invoicerepo.InvoiceRepository, orders OrderGateway) InvoiceApp {
	return &invoiceAppImpl{invoiceRepo: invoiceRepo, orders: orders}
}

// ShippingFeeCents is the flat fee plus 10% of the order total, rounded
// half-up in integer cents.
func ShippingFeeCents(totalCents int64) int64 {
	return constant.ShippingFlatFeeCents + (totalCents*constant.ShippingFeePercentage+50)/100
}

// CreateInvoice issues the single invoice for a delivered order.
func (s *invoiceAppImpl) CreateInvoice(ctx context.Context, req *model.InvoiceCreateRequest) (*model.Invoice, error) {
	o, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != constant.OrderStatusDelivered {
		return nil, errors.SetCustomError(constant.ErrOrderInvalidStatus)
	}

	existing, err := s.invoiceRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		logger.Error("[CreateInvoice] find by order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomError(constant.ErrOrderAlreadyInvoiced)
	}

	now := time.Now().UTC()
	inv := &model.Invoice{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		AmountCents: o.TotalCents + ShippingFeeCents(o.TotalCents),
		Status:      constant.InvoiceStatusIssued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.invoiceRepo.Insert(ctx, inv)
	if err != nil {
		logger.Error("[CreateInvoice] insert", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	inv.ID = id

	metrics.InvoicesIssuedTotal.Inc()
	logger.Info("[CreateInvoice] invoice issued", zap.Uint64("invoice_id", id), zap.Uint64("order_id", o.ID),
		zap.Int64("amount_cents", inv.AmountCents))
	return inv, nil
}

func (s *invoiceAppImpl) UpdateInvoiceStatus(ctx context.Context, id uint64, req *model.InvoiceStatusRequest) (*model.Invoice, error) {
	inv, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == "" {
		return nil, errors.SetCustomError(constant.ErrStatusRequired)
	}

	next := constant.InvoiceStatus(req.Status)
	if !constant.InvoiceTransitionAllowed(inv.Status, next) {
		return nil, errors.SetCustomError(constant.ErrTransitionNotAllowed)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.SetStatus(ctx, id, next, now); err != nil {
		logger.Error("[UpdateInvoiceStatus] persist", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	inv.Status = next
	inv.UpdatedAt = now
	return inv, nil
}

func (s *invoiceAppImpl) GetInvoice(ctx context.Context, id uint64) (*model.Invoice, error) {
	return s.findInvoice(ctx, id)
}

func (s *invoiceAppImpl) findInvoice(ctx context.Context, id uint64) (*model.Invoice, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("[Invoice] find", zap.Uint64("invoice_id", id), zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if inv == nil {
		return nil, errors.SetCustomError(constant.ErrInvoiceNotFound)
	}
	return inv, nil
}

func (s *invoiceAppImpl) ListInvoices(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, int64, error) {
	invoices, total, err := s.invoiceRepo.List(ctx, f)
	if err != nil {
		logger.Error("[ListInvoices] list", zap.Error(err))
		return nil, 0, errors.SetCustomError(constant.ErrInternal)
	}
	return invoices, total, nil
}
