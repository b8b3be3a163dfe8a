package phonepe

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// =====================================================
// PHONEPE X-VERIFY CHECKSUM
// =====================================================

// Compute returns the X-VERIFY header value for a payload and endpoint path:
// hex(SHA256(payload + path + saltKey)) + "###" + saltIndex.
func Compute(payload, path, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(payload + path + saltKey))
	return hex.EncodeToString(sum[:]) + "###" + saltIndex
}

// Verify splits an inbound X-VERIFY on "###", recomputes the checksum over
// the raw body with the pay path constant, and compares in constant time.
// The salt index in the header is informational; the single configured salt
// key is authoritative.
func Verify(rawBody []byte, xVerify, saltKey string) bool {
	if saltKey == "" || xVerify == "" {
		return false
	}

	parts := strings.SplitN(xVerify, "###", 2)
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	sum := sha256.Sum256([]byte(string(rawBody) + payPath + saltKey))
	expected := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(parts[0]), []byte(expected)) == 1
}
