package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout-be/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, autoCapture bool) (*gateway.Order, error) {
	args := m.Called(ctx, amountMinor, currency, receipt, autoCapture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}

func (m *MockGateway) FetchOrder(ctx context.Context, orderID string) (*gateway.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}

func (m *MockGateway) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Payment), args.Error(1)
}

const testSecret = "rzp_test_secret"

func validInput() VerifyInput {
	return VerifyInput{
		OrderID:   "order_NXhK2oZqUSqYxG",
		PaymentID: "pay_NXhLQhD4JtCVuT",
		Signature: ExpectedSignature(testSecret, "order_NXhK2oZqUSqYxG", "pay_NXhLQhD4JtCVuT"),
	}
}

func capturedPayment() *gateway.Payment {
	return &gateway.Payment{
		ID:        "pay_NXhLQhD4JtCVuT",
		OrderID:   "order_NXhK2oZqUSqYxG",
		Amount:    50000,
		Currency:  "INR",
		Status:    gateway.StatusCaptured,
		Method:    "upi",
		Captured:  true,
		CreatedAt: 1704110500,
	}
}

func matchingOrder() *gateway.Order {
	return &gateway.Order{
		ID:       "order_NXhK2oZqUSqYxG",
		Amount:   50000,
		Currency: "INR",
		Status:   "paid",
	}
}

func TestService_VerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(capturedPayment(), nil)
		mockGw.On("FetchOrder", ctx, in.OrderID).Return(matchingOrder(), nil)

		conf, err := svc.VerifyPayment(ctx, in)

		assert.NoError(t, err)
		assert.NotNil(t, conf)
		assert.Equal(t, in.PaymentID, conf.PaymentID)
		assert.Equal(t, in.OrderID, conf.OrderID)
		assert.Equal(t, int64(50000), conf.Amount)
		assert.Equal(t, "INR", conf.Currency)
		assert.Equal(t, gateway.StatusCaptured, conf.Status)
		assert.Equal(t, "upi", conf.Method)
		assert.Equal(t, time.Unix(1704110500, 0).UTC(), conf.CreatedAt)
		mockGw.AssertExpectations(t)
	})

	t.Run("Missing fields fail before any gateway call", func(t *testing.T) {
		cases := []struct {
			name  string
			mod   func(*VerifyInput)
			field string
		}{
			{"order id", func(in *VerifyInput) { in.OrderID = "" }, "razorpay_order_id"},
			{"payment id", func(in *VerifyInput) { in.PaymentID = "" }, "razorpay_payment_id"},
			{"signature", func(in *VerifyInput) { in.Signature = "" }, "razorpay_signature"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mockGw := new(MockGateway)
				svc := NewService(mockGw, testSecret)

				in := validInput()
				tc.mod(&in)

				conf, err := svc.VerifyPayment(ctx, in)

				assert.Nil(t, conf)
				var missing *MissingFieldError
				assert.ErrorAs(t, err, &missing)
				assert.Equal(t, tc.field, missing.Field)
				mockGw.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Tampered signature", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)

		in := validInput()
		// Flip one character
		altered := []byte(in.Signature)
		if altered[0] == 'a' {
			altered[0] = 'b'
		} else {
			altered[0] = 'a'
		}
		in.Signature = string(altered)

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		mockGw.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
	})

	t.Run("Truncated signature is a mismatch, not an internal error", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)

		in := validInput()
		in.Signature = in.Signature[:16]

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Payment belongs to a different order", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		pay := capturedPayment()
		pay.OrderID = "order_someoneElse"
		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(pay, nil)

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		mockGw.AssertNotCalled(t, "FetchOrder", mock.Anything, mock.Anything)
	})

	t.Run("Payment not captured", func(t *testing.T) {
		for _, status := range []string{gateway.StatusCreated, gateway.StatusAuthorized, gateway.StatusFailed, gateway.StatusRefunded} {
			t.Run(status, func(t *testing.T) {
				mockGw := new(MockGateway)
				svc := NewService(mockGw, testSecret)
				in := validInput()

				pay := capturedPayment()
				pay.Status = status
				mockGw.On("FetchPayment", ctx, in.PaymentID).Return(pay, nil)

				conf, err := svc.VerifyPayment(ctx, in)

				assert.Nil(t, conf)
				var notCaptured *NotCapturedError
				assert.ErrorAs(t, err, &notCaptured)
				assert.Equal(t, status, notCaptured.Status)
				mockGw.AssertNotCalled(t, "FetchOrder", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Amount mismatch", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		pay := capturedPayment()
		pay.Amount = 9999
		ord := matchingOrder()
		ord.Amount = 10000

		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(pay, nil)
		mockGw.On("FetchOrder", ctx, in.OrderID).Return(ord, nil)

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		var mismatch *AmountMismatchError
		assert.ErrorAs(t, err, &mismatch)
		assert.Equal(t, int64(10000), mismatch.OrderAmount)
		assert.Equal(t, int64(9999), mismatch.PaymentAmount)
	})

	t.Run("Payment fetch failure", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(nil, errors.New("dial tcp: i/o timeout"))

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("Order fetch failure", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(capturedPayment(), nil)
		mockGw.On("FetchOrder", ctx, in.OrderID).Return(nil, errors.New("razorpay error: 502"))

		conf, err := svc.VerifyPayment(ctx, in)

		assert.Nil(t, conf)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("Resubmission is idempotent", func(t *testing.T) {
		mockGw := new(MockGateway)
		svc := NewService(mockGw, testSecret)
		in := validInput()

		mockGw.On("FetchPayment", ctx, in.PaymentID).Return(capturedPayment(), nil)
		mockGw.On("FetchOrder", ctx, in.OrderID).Return(matchingOrder(), nil)

		first, err1 := svc.VerifyPayment(ctx, in)
		second, err2 := svc.VerifyPayment(ctx, in)

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first, second)
	})
}
