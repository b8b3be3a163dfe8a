package stripe

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedHeader(t *testing.T, timestamp int64, body []byte, secret string) string {
	t.Helper()
	return fmt.Sprintf("t=%d,v1=%s", timestamp, ComputeSignature(timestamp, body, secret))
}

func TestVerifySignature(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{"type":"payment_intent.succeeded"}`)

	header := signedHeader(t, now.Unix(), body, "whsec_stripe")
	assert.True(t, VerifySignature(body, header, "whsec_stripe", now))
	assert.False(t, VerifySignature(body, header, "wrong_secret", now))
	assert.False(t, VerifySignature([]byte(`{"type":"tampered"}`), header, "whsec_stripe", now))
}

func TestVerifySignature_RejectsOutsideReplayWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{"type":"payment_intent.succeeded"}`)

	// Correctly signed but 400 seconds old.
	stale := signedHeader(t, now.Add(-400*time.Second).Unix(), body, "whsec_stripe")
	assert.False(t, VerifySignature(body, stale, "whsec_stripe", now))

	// Timestamps from the future are rejected the same way.
	future := signedHeader(t, now.Add(400*time.Second).Unix(), body, "whsec_stripe")
	assert.False(t, VerifySignature(body, future, "whsec_stripe", now))

	// Just inside the window passes.
	recent := signedHeader(t, now.Add(-299*time.Second).Unix(), body, "whsec_stripe")
	assert.True(t, VerifySignature(body, recent, "whsec_stripe", now))
}

func TestVerifySignature_SecretRotation(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{"type":"charge.succeeded"}`)
	ts := now.Unix()

	// During rotation Stripe sends one v1 entry per active secret.
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s",
		ts,
		ComputeSignature(ts, body, "whsec_old"),
		ComputeSignature(ts, body, "whsec_new"),
	)

	assert.True(t, VerifySignature(body, header, "whsec_new", now))
	assert.True(t, VerifySignature(body, header, "whsec_old", now))
	assert.False(t, VerifySignature(body, header, "whsec_other", now))
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{}`)

	for _, header := range []string{
		"",
		"t=abc,v1=deadbeef",
		"t=1700000000",
		"v1=deadbeef",
		"garbage",
	} {
		assert.False(t, VerifySignature(body, header, "whsec_stripe", now), "header %q", header)
	}
}

func TestParseSignatureHeader(t *testing.T) {
	parsed, ok := parseSignatureHeader("t=1700000000, v1=aaa, v1=bbb, v0=legacy")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), parsed.Timestamp)
	assert.Equal(t, []string{"aaa", "bbb"}, parsed.V1)
}
