package razorpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := ComputeSignature(body, "whsec_rzp")

	assert.True(t, VerifySignature(body, sig, "whsec_rzp"))
	assert.False(t, VerifySignature(body, sig, "other_secret"))
	assert.False(t, VerifySignature([]byte(`{"event":"tampered"}`), sig, "whsec_rzp"))
	assert.False(t, VerifySignature(body, "", "whsec_rzp"))
	assert.False(t, VerifySignature(body, sig, ""))
}
