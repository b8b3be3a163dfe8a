package cashfree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"data":{"order_id":"ORD1"}}`)
	secret := "whsec_test"

	sig := ComputeSignature(body, secret)

	assert.True(t, VerifySignature(body, sig, secret))
}

func TestVerifySignature_RejectsTamperedBody(t *testing.T) {
	body := []byte(`{"data":{"order_id":"ORD1"}}`)
	secret := "whsec_test"
	sig := ComputeSignature(body, secret)

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[len(tampered)/2] ^= 0x01

	assert.False(t, VerifySignature(tampered, sig, secret))
}

func TestVerifySignature_RejectsEmptySecretOrHeader(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, VerifySignature(body, ComputeSignature(body, "s"), ""))
	assert.False(t, VerifySignature(body, "", "s"))
}

func TestVerifySignature_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{"data":{}}`)
	sig := ComputeSignature(body, "secret_a")

	assert.False(t, VerifySignature(body, sig, "secret_b"))
}
