package payment

import "time"

// VerifyInput is a single verification attempt as submitted by the client
// after the checkout widget completes. Evaluated once and discarded.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Confirmation is the normalized result of a successful verification. All
// fields come from the gateway's own records, never from the client.
type Confirmation struct {
	PaymentID string
	OrderID   string
	Amount    int64
	Currency  string
	Status    string
	Method    string
	CreatedAt time.Time
}
