package order

import (
	"context"
	"fmt"

	"checkout-be/internal/gateway"
	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"go.uber.org/zap"
)

const (
	defaultCurrency = "INR"

	// minorUnitFactor converts major currency units to the smallest unit
	// the gateway expects (rupees to paise).
	minorUnitFactor = 100
)

type Service interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*gateway.Order, error)
}

type service struct {
	gateway   gateway.Gateway
	receiptFn utils.ReceiptFunc
}

// NewService builds the order issuer. receiptFn may be nil, in which case
// the time-derived default is used.
func NewService(gw gateway.Gateway, receiptFn utils.ReceiptFunc) Service {
	if receiptFn == nil {
		receiptFn = utils.GenerateReceiptNumber
	}
	return &service{
		gateway:   gw,
		receiptFn: receiptFn,
	}
}

// CreateOrder validates the requested amount (major units), converts it to
// minor units and creates an auto-capture order with the gateway.
func (s *service) CreateOrder(ctx context.Context, amount int64, currency string) (*gateway.Order, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}

	if currency == "" {
		currency = defaultCurrency
	}

	receipt := s.receiptFn()
	amountMinor := amount * minorUnitFactor

	ord, err := s.gateway.CreateOrder(ctx, amountMinor, currency, receipt, true)
	if err != nil {
		logger.FromCtx(ctx).Error("Gateway rejected order creation",
			zap.Int64("amount", amountMinor),
			zap.String("currency", currency),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	logger.FromCtx(ctx).Info("Order created",
		zap.String("order_id", ord.ID),
		zap.Int64("amount", ord.Amount),
		zap.String("currency", ord.Currency),
		zap.String("receipt", ord.Receipt),
	)

	return ord, nil
}
