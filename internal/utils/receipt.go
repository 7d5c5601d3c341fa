package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReceiptFunc produces a unique receipt string for a new order. Injectable
// so tests can assert on deterministic receipts.
type ReceiptFunc func() string

// GenerateReceiptNumber builds a time-derived receipt that is unique per
// request even when two orders are created in the same second.
func GenerateReceiptNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	suffix := strings.Split(uuid.New().String(), "-")[0]

	return fmt.Sprintf("rcpt-%s-%s", datePart, suffix)
}
