package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedSignature(t *testing.T) {
	secret := "test_secret"

	t.Run("Deterministic", func(t *testing.T) {
		first := ExpectedSignature(secret, "order_abc", "pay_xyz")
		second := ExpectedSignature(secret, "order_abc", "pay_xyz")

		assert.Equal(t, first, second)
	})

	t.Run("Matches HMAC-SHA256 of pipe-joined ids", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte("order_abc|pay_xyz"))
		want := hex.EncodeToString(mac.Sum(nil))

		assert.Equal(t, want, ExpectedSignature(secret, "order_abc", "pay_xyz"))
	})

	t.Run("Lowercase hex, 64 chars", func(t *testing.T) {
		sig := ExpectedSignature(secret, "order_abc", "pay_xyz")

		assert.Len(t, sig, 64)
		assert.Regexp(t, `^[0-9a-f]{64}$`, sig)
	})

	t.Run("Key changes digest", func(t *testing.T) {
		a := ExpectedSignature("secret-a", "order_abc", "pay_xyz")
		b := ExpectedSignature("secret-b", "order_abc", "pay_xyz")

		assert.NotEqual(t, a, b)
	})
}

func TestSignatureEqual(t *testing.T) {
	sig := ExpectedSignature("test_secret", "order_abc", "pay_xyz")

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, SignatureEqual(sig, sig))
	})

	t.Run("Single character difference", func(t *testing.T) {
		altered := []byte(sig)
		if altered[0] == 'a' {
			altered[0] = 'b'
		} else {
			altered[0] = 'a'
		}
		assert.False(t, SignatureEqual(sig, string(altered)))
	})

	t.Run("Length mismatch is a mismatch, not a panic", func(t *testing.T) {
		assert.False(t, SignatureEqual(sig, sig[:10]))
		assert.False(t, SignatureEqual(sig, ""))
		assert.False(t, SignatureEqual(sig, sig+"00"))
	})
}
