package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// =====================================================
// WEBHOOK SIGNATURE
// =====================================================

// ComputeSignature returns hex(HMAC-SHA256(rawBody, secret)), the value
// Razorpay sends in the X-Razorpay-Signature header.
func ComputeSignature(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the webhook signature in constant time. An empty
// secret or header always fails.
func VerifySignature(rawBody []byte, header, secret string) bool {
	if secret == "" || header == "" {
		return false
	}
	expected := ComputeSignature(rawBody, secret)
	return hmac.Equal([]byte(expected), []byte(header))
}
