package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// =====================================================
// WEBHOOK SIGNATURE
// =====================================================

// signatureHeader is the parsed form of a Stripe-Signature header:
// comma-separated t=<unix seconds> and one or more v1=<hex sig> entries.
// Multiple v1 values appear during webhook secret rotation.
type signatureHeader struct {
	Timestamp int64
	V1        []string
}

func parseSignatureHeader(header string) (*signatureHeader, bool) {
	parsed := &signatureHeader{}
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, false
			}
			parsed.Timestamp = ts
		case "v1":
			parsed.V1 = append(parsed.V1, value)
		}
	}
	if parsed.Timestamp == 0 || len(parsed.V1) == 0 {
		return nil, false
	}
	return parsed, true
}

// ComputeSignature returns hex(HMAC-SHA256("<timestamp>.<rawBody>", secret)),
// the scheme Stripe signs webhook deliveries with.
func ComputeSignature(timestamp int64, rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a Stripe-Signature header against the raw body.
// Signatures older (or newer) than the tolerance window are rejected to bound
// replay, and every v1 candidate is compared in constant time.
func VerifySignature(rawBody []byte, header, secret string, now time.Time) bool {
	if secret == "" || header == "" {
		return false
	}

	parsed, ok := parseSignatureHeader(header)
	if !ok {
		return false
	}

	age := now.Unix() - parsed.Timestamp
	if age > ToleranceSeconds || age < -ToleranceSeconds {
		return false
	}

	expected := ComputeSignature(parsed.Timestamp, rawBody, secret)
	for _, candidate := range parsed.V1 {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return true
		}
	}
	return false
}
