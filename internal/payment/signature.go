package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ExpectedSignature derives the signature the gateway's checkout widget
// produces for a completed payment: HMAC-SHA256 over "{order_id}|{payment_id}"
// keyed with the integration secret, rendered as lowercase hex.
func ExpectedSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureEqual compares signatures in constant time. A length mismatch is
// an ordinary mismatch, not an error.
func SignatureEqual(expected, provided string) bool {
	return hmac.Equal([]byte(expected), []byte(provided))
}
