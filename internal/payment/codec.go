package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strings"
)

// Gateway parameter names echoed in every callback.
const (
	paramAmount       = "vnp_Amount"
	paramTxnRef       = "vnp_TxnRef"
	paramResponseCode = "vnp_ResponseCode"
	paramSecureHash   = "vnp_SecureHash"
	paramHashType     = "vnp_SecureHashType"
)

// Param is one canonicalized key/value pair, both already encoded.
type Param struct {
	Key   string
	Value string
}

const upperhex = "0123456789ABCDEF"

func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

// encodeComponent percent-encodes s the way the gateway's counterpart does
// (JavaScript encodeURIComponent): unreserved plus !~*'() pass through,
// everything else becomes uppercase %XX per UTF-8 byte. The signature is
// computed over this form, so it must not drift.
func encodeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Canonicalize returns params with keys sorted by their encoded form and
// values encoded with encoded spaces rewritten to '+'.
func Canonicalize(params map[string]string) []Param {
	byKey := make(map[string]string, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		ek := encodeComponent(k)
		keys = append(keys, ek)
		byKey[ek] = strings.ReplaceAll(encodeComponent(v), "%20", "+")
	}
	sort.Strings(keys)

	out := make([]Param, 0, len(keys))
	for _, k := range keys {
		out = append(out, Param{Key: k, Value: byKey[k]})
	}
	return out
}

// Serialize joins already-encoded pairs as k=v&k=v with no further escaping.
func Serialize(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Sign computes the lowercase hex HMAC-SHA512 of data under secret.
func Sign(data, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify strips the signature fields from params, re-derives the signature
// and compares it to the provided one. Gateway signatures are not
// attacker-secret-derived, so plain string equality is sufficient here.
func Verify(params map[string]string, provided, secret string) bool {
	clean := make(map[string]string, len(params))
	for k, v := range params {
		if k == paramSecureHash || k == paramHashType {
			continue
		}
		clean[k] = v
	}
	return Sign(Serialize(Canonicalize(clean)), secret) == provided
}
