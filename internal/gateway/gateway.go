package gateway

import "context"

// Gateway is the contract the rest of the system depends on. The order
// issuer only creates orders; the payment verifier only fetches records.
// Both are wired to the same Razorpay client in production and to scripted
// doubles in tests.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string, autoCapture bool) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}
