package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"
	"checkout-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

type razorpayGateway struct {
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- CreateOrder -----------------

func (g *razorpayGateway) CreateOrder(
	ctx context.Context,
	amountMinor int64,
	currency string,
	receipt string,
	autoCapture bool,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.Int64("amount", amountMinor),
		zap.String("currency", currency),
		zap.String("receipt", receipt),
	)

	capture := 0
	if autoCapture {
		capture = 1
	}

	body := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": capture,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal order request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", razorpayBaseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Add("Content-Type", "application/json")

	log.Info("Creating order with Razorpay")

	var order Order
	if err := g.do(req, &order); err != nil {
		log.Error("Razorpay order creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)

	return &order, nil
}

// ----------------- FetchOrder -----------------

func (g *razorpayGateway) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	url := fmt.Sprintf("%s/v1/orders/%s", razorpayBaseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)

	var order Order
	if err := g.do(req, &order); err != nil {
		log.Error("Razorpay order fetch failed", zap.Error(err))
		return nil, err
	}

	return &order, nil
}

// ----------------- FetchPayment -----------------

func (g *razorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	log := logger.FromCtx(ctx).With(zap.String("payment_id", paymentID))

	url := fmt.Sprintf("%s/v1/payments/%s", razorpayBaseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)

	var payment Payment
	if err := g.do(req, &payment); err != nil {
		log.Error("Razorpay payment fetch failed", zap.Error(err))
		return nil, err
	}

	return &payment, nil
}

// do executes the request and decodes the JSON body into out. Error bodies
// are surfaced in the returned error for server-side logs; credentials never
// appear in them.
func (g *razorpayGateway) do(req *http.Request, out interface{}) error {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.L().Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("razorpay error: %s", string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed decoding razorpay response: %w", err)
	}

	return nil
}
