package payu

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// =====================================================
// PAYU HASH CHAINS
// =====================================================
//
// PayU authenticates with derived SHA-512 hashes instead of static tokens.
// Three chains are in play, each a pipe-joined canonical string:
//
//	request:  key|txnid|amount|productinfo|firstname|email|udf1..udf5|||||salt
//	callback: salt|status|||||udf5..udf1|email|firstname|productinfo|amount|txnid|key
//	command:  key|command|var1|var2|...|salt
//
// The callback chain is the request chain reversed with status injected after
// the salt; verification recomputes it from the returned fields and compares
// in constant time.

// RequestParams are the transaction fields covered by the request hash.
type RequestParams struct {
	TxnID       string
	Amount      string // major units, two decimals
	ProductInfo string
	Firstname   string
	Email       string
	UDF         [5]string
}

// RequestHash computes the lower-cased hex request hash attached to the
// client-redirect form.
func RequestHash(key string, p RequestParams, salt string) string {
	fields := []string{
		key,
		p.TxnID,
		p.Amount,
		p.ProductInfo,
		p.Firstname,
		p.Email,
		p.UDF[0], p.UDF[1], p.UDF[2], p.UDF[3], p.UDF[4],
		"", "", "", "", "",
		salt,
	}
	return sha512Hex(strings.Join(fields, "|"))
}

// CallbackHash computes the expected hash for a callback/webhook posting,
// built from the echoed fields in reverse order with the status injected.
func CallbackHash(key string, p RequestParams, status, salt string) string {
	fields := []string{
		salt,
		status,
		"", "", "", "", "",
		p.UDF[4], p.UDF[3], p.UDF[2], p.UDF[1], p.UDF[0],
		p.Email,
		p.Firstname,
		p.ProductInfo,
		p.Amount,
		p.TxnID,
		key,
	}
	return sha512Hex(strings.Join(fields, "|"))
}

// VerifyCallbackHash recomputes the callback hash from the returned fields
// and compares it against the posted hash in constant time.
func VerifyCallbackHash(key string, p RequestParams, status, received, salt string) bool {
	if salt == "" || received == "" {
		return false
	}
	expected := CallbackHash(key, p, status, salt)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(received)), []byte(expected)) == 1
}

// CommandHash computes the webservice hash for refund/verify calls:
// key|command|var1|var2|...|salt.
func CommandHash(key, command string, vars []string, salt string) string {
	fields := make([]string, 0, len(vars)+3)
	fields = append(fields, key, command)
	fields = append(fields, vars...)
	fields = append(fields, salt)
	return sha512Hex(strings.Join(fields, "|"))
}

func sha512Hex(raw string) string {
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}
