package order

import "errors"

var (
	// ErrInvalidAmount rejects the request before any gateway call is made.
	ErrInvalidAmount = errors.New("amount must be at least 1")

	// ErrOrderCreation wraps gateway-side failures; the underlying detail is
	// logged server-side, never returned to the client.
	ErrOrderCreation = errors.New("order creation failed")
)
