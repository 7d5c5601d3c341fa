package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature is deliberately detail-free: the caller never
	// learns which half of the comparison failed.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrGatewayUnavailable covers transport and auth failures talking to
	// the gateway during reconciliation.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// MissingFieldError names the absent verification field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NotCapturedError reports the payment's actual status when it is anything
// other than captured.
type NotCapturedError struct {
	Status string
}

func (e *NotCapturedError) Error() string {
	return fmt.Sprintf("payment not captured, status is %q", e.Status)
}

// AmountMismatchError reports both amounts (minor units) for support tooling.
type AmountMismatchError struct {
	OrderAmount   int64
	PaymentAmount int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount %d does not match order amount %d", e.PaymentAmount, e.OrderAmount)
}
