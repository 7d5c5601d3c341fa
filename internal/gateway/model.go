package gateway

// Order is a Razorpay order record. Amounts are integers in the smallest
// currency unit (paise for INR).
type Order struct {
	ID         string `json:"id"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

// Payment is a Razorpay payment record. Only read by this system, never
// created.
type Payment struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Captured  bool   `json:"captured"`
	CreatedAt int64  `json:"created_at"`
}

// Payment lifecycle statuses as reported by Razorpay. Only StatusCaptured
// means the money has actually been received.
const (
	StatusCreated    = "created"
	StatusAuthorized = "authorized"
	StatusCaptured   = "captured"
	StatusRefunded   = "refunded"
	StatusFailed     = "failed"
)
