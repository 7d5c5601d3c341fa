package payment

import (
	"context"
	"fmt"
	"time"

	"checkout-be/internal/gateway"
	"checkout-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	VerifyPayment(ctx context.Context, in VerifyInput) (*Confirmation, error)
}

type service struct {
	gateway gateway.Gateway
	secret  string
}

func NewService(gw gateway.Gateway, secret string) Service {
	return &service{
		gateway: gw,
		secret:  secret,
	}
}

// VerifyPayment runs the verification states strictly in order; the first
// failing state is terminal. Acceptance requires a valid signature AND a
// captured payment AND an exact amount match against the order — the client
// is never trusted for amount or status.
func (s *service) VerifyPayment(ctx context.Context, in VerifyInput) (*Confirmation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", in.OrderID),
		zap.String("payment_id", in.PaymentID),
	)

	// 1. Field presence
	switch {
	case in.OrderID == "":
		return nil, &MissingFieldError{Field: "razorpay_order_id"}
	case in.PaymentID == "":
		return nil, &MissingFieldError{Field: "razorpay_payment_id"}
	case in.Signature == "":
		return nil, &MissingFieldError{Field: "razorpay_signature"}
	}

	// 2-3. Derive the expected signature and compare in constant time.
	expected := ExpectedSignature(s.secret, in.OrderID, in.PaymentID)
	if !SignatureEqual(expected, in.Signature) {
		log.Warn("Signature mismatch")
		return nil, ErrInvalidSignature
	}

	// 4. The signature only proves the pairing was vouched for; capture
	// must be confirmed against the gateway's own record.
	pay, err := s.gateway.FetchPayment(ctx, in.PaymentID)
	if err != nil {
		log.Error("Payment fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// The payment must belong to the claimed order. Reported as a signature
	// failure so the response reveals nothing extra.
	if pay.OrderID != "" && pay.OrderID != in.OrderID {
		log.Warn("Payment belongs to a different order",
			zap.String("payment_order_id", pay.OrderID),
		)
		return nil, ErrInvalidSignature
	}

	// 5. Status check: only captured means money received.
	if pay.Status != gateway.StatusCaptured {
		log.Warn("Payment not captured", zap.String("status", pay.Status))
		return nil, &NotCapturedError{Status: pay.Status}
	}

	// 6. Amount reconciliation against the order record, exact in minor units.
	ord, err := s.gateway.FetchOrder(ctx, in.OrderID)
	if err != nil {
		log.Error("Order fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if pay.Amount != ord.Amount {
		log.Warn("Amount mismatch",
			zap.Int64("order_amount", ord.Amount),
			zap.Int64("payment_amount", pay.Amount),
		)
		return nil, &AmountMismatchError{
			OrderAmount:   ord.Amount,
			PaymentAmount: pay.Amount,
		}
	}

	log.Info("Payment verified",
		zap.Int64("amount", pay.Amount),
		zap.String("method", pay.Method),
	)

	// 7. Normalized confirmation from gateway records only.
	return &Confirmation{
		PaymentID: pay.ID,
		OrderID:   in.OrderID,
		Amount:    pay.Amount,
		Currency:  pay.Currency,
		Status:    pay.Status,
		Method:    pay.Method,
		CreatedAt: time.Unix(pay.CreatedAt, 0).UTC(),
	}, nil
}
