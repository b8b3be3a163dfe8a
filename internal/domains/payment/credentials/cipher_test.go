package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMasterKey = "a28a4a70f75bd99ba71f8c0a67b71d2e8ea3b6a25a3ed0e87de2cab8f2f157e2"

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher(testMasterKey)
	require.NoError(t, err)

	sealed, err := c.Seal("whsec_test_secret")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "whsec")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "whsec_test_secret", plain)
}

func TestCipherNonceUniqueness(t *testing.T) {
	c, err := NewCipher(testMasterKey)
	require.NoError(t, err)

	a, err := c.Seal("same-value")
	require.NoError(t, err)
	b, err := c.Seal("same-value")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCipherRejectsTamperedValue(t *testing.T) {
	c, err := NewCipher(testMasterKey)
	require.NoError(t, err)

	sealed, err := c.Seal("secret")
	require.NoError(t, err)

	tampered := sealed[:10] + flip(sealed[10]) + sealed[11:]
	_, err = c.Open(tampered)
	assert.Error(t, err)
}

func TestNewCipherRejectsBadKeys(t *testing.T) {
	_, err := NewCipher("not-hex")
	assert.Error(t, err)

	_, err = NewCipher("abcd")
	assert.Error(t, err)
}

func flip(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}

func TestStaticResolver(t *testing.T) {
	r := NewStaticResolver()
	r.Set("stripe", "default", "sandbox", map[string]string{
		"secret_key":     "sk_test_1",
		"webhook_secret": "whsec_1",
	})

	values, err := r.Resolve(context.Background(), "stripe", "default", "sandbox")
	require.NoError(t, err)
	assert.Equal(t, "sk_test_1", values["secret_key"])

	_, err = r.Resolve(context.Background(), "stripe", "default", "production")
	assert.Error(t, err)
}
