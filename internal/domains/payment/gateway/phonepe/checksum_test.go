package phonepe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Format(t *testing.T) {
	got := Compute("eyJhIjoxfQ==", payPath, "salt-key", "1")

	parts := strings.SplitN(got, "###", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 64) // sha256 hex
	assert.Equal(t, "1", parts[1])
}

func TestVerify(t *testing.T) {
	body := []byte(`{"code":"PAYMENT_SUCCESS","data":{"merchantTransactionId":"ORD7"}}`)
	xVerify := Compute(string(body), payPath, "salt-key", "1")

	assert.True(t, Verify(body, xVerify, "salt-key"))
}

func TestVerify_RejectsTamperedBody(t *testing.T) {
	body := []byte(`{"code":"PAYMENT_SUCCESS"}`)
	xVerify := Compute(string(body), payPath, "salt-key", "1")

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[5] ^= 0x01

	assert.False(t, Verify(tampered, xVerify, "salt-key"))
}

func TestVerify_RejectsWrongSalt(t *testing.T) {
	body := []byte(`{}`)
	xVerify := Compute(string(body), payPath, "salt-a", "1")

	assert.False(t, Verify(body, xVerify, "salt-b"))
}

func TestVerify_RejectsMalformedHeader(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, Verify(body, "", "salt-key"))
	assert.False(t, Verify(body, "no-separator", "salt-key"))
	assert.False(t, Verify(body, "###1", "salt-key"))
	assert.False(t, Verify(body, Compute(string(body), payPath, "salt-key", "1"), ""))
}
