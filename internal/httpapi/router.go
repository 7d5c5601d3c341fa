package httpapi

import (
	"net/http"

	"checkout-be/internal/middleware"
)

// NewRouter wires the API routes and the middleware chain. Unregistered
// paths fall through to the mux's 404.
func NewRouter(h *Handler, allowedOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/orders", h.CreateOrder)
	mux.HandleFunc("/api/payments/verify", h.VerifyPayment)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(handler)
	handler = middleware.CORSMiddleware(allowedOrigin)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}
