package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"checkout-be/internal/logger"
	"checkout-be/internal/order"
	"checkout-be/internal/payment"
	"checkout-be/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	OrderSvc   order.Service
	PaymentSvc payment.Service
}

func NewHandler(orderSvc order.Service, paymentSvc payment.Service) *Handler {
	return &Handler{
		OrderSvc:   orderSvc,
		PaymentSvc: paymentSvc,
	}
}

type createOrderRequest struct {
	Amount   *json.Number `json:"amount"`
	Currency string       `json:"currency"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type paymentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Method    string    `json:"method,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOrder handles POST /api/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid amount",
			"message": "amount is required and must be a number",
		})
		return
	}

	// Major units; fractions and non-numeric input are rejected here.
	amount, err := req.Amount.Int64()
	if err != nil {
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid amount",
			"message": "amount must be a whole number of currency units",
		})
		return
	}

	ord, err := h.OrderSvc.CreateOrder(r.Context(), amount, req.Currency)
	if err != nil {
		if errors.Is(err, order.ErrInvalidAmount) {
			writeFailure(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Invalid amount",
				"message": order.ErrInvalidAmount.Error(),
			})
			return
		}

		logger.FromCtx(r.Context()).Error("Order creation failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Order creation failed",
			"message": "could not create order with the payment gateway",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order": orderResponse{
			ID:       ord.ID,
			Amount:   ord.Amount,
			Currency: ord.Currency,
			Receipt:  ord.Receipt,
			Status:   ord.Status,
		},
	})
}

// VerifyPayment handles POST /api/payments/verify.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid request",
			"message": "body must be valid JSON",
		})
		return
	}

	conf, err := h.PaymentSvc.VerifyPayment(r.Context(), payment.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.writeVerifyError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"payment": paymentResponse{
			ID:        conf.PaymentID,
			OrderID:   conf.OrderID,
			Amount:    conf.Amount,
			Currency:  conf.Currency,
			Status:    conf.Status,
			Method:    conf.Method,
			CreatedAt: conf.CreatedAt,
		},
	})
}

// writeVerifyError maps verification failures to responses. Reconciliation
// failures carry diagnostics; the signature failure never does.
func (h *Handler) writeVerifyError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *payment.MissingFieldError
	var notCaptured *payment.NotCapturedError
	var mismatch *payment.AmountMismatchError

	switch {
	case errors.As(err, &missing):
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Missing field",
			"message": missing.Error(),
		})
	case errors.Is(err, payment.ErrInvalidSignature):
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid signature",
		})
	case errors.As(err, &notCaptured):
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Payment not captured",
			"status": notCaptured.Status,
		})
	case errors.As(err, &mismatch):
		writeFailure(w, http.StatusBadRequest, map[string]interface{}{
			"error":          "Amount mismatch",
			"order_amount":   mismatch.OrderAmount,
			"payment_amount": mismatch.PaymentAmount,
		})
	default:
		logger.FromCtx(r.Context()).Error("Payment verification failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Verification failed",
			"message": "unable to verify payment with the gateway",
		})
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeFailure(w http.ResponseWriter, code int, fields map[string]interface{}) {
	body := map[string]interface{}{"success": false}
	for k, v := range fields {
		body[k] = v
	}
	utils.WriteJSON(w, code, body)
}
