package cashfree

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// =====================================================
// CASHFREE WEBHOOK SIGNATURE
// =====================================================

// ComputeSignature returns hex(HMAC-SHA256(rawBody, secret)).
// Cashfree signs the literal request bytes, not a re-serialized parse.
func ComputeSignature(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the x-cashfree-signature header value against the
// recomputed signature in constant time. An empty secret or empty header is
// always a reject.
func VerifySignature(rawBody []byte, received, secret string) bool {
	if secret == "" || received == "" {
		return false
	}
	expected := ComputeSignature(rawBody, secret)
	return hmac.Equal([]byte(received), []byte(expected))
}
