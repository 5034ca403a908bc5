package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "Thanh%20toan%20don%20hang%3A123", encodeComponent("Thanh toan don hang:123"))
	// unreserved set passes through untouched
	assert.Equal(t, "aZ09-_.!~*'()", encodeComponent("aZ09-_.!~*'()"))
	// multi-byte runes are escaped per UTF-8 byte, uppercase hex
	assert.Equal(t, "%C4%91%E1%BB%93ng", encodeComponent("đồng"))
	assert.Equal(t, "a%2Bb%3Dc%26d", encodeComponent("a+b=c&d"))
}

func TestCanonicalizeSortsAndEncodesValues(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":    "abc123",
		"vnp_Amount":    "15000000",
		"vnp_OrderInfo": "Thanh toan don hang:abc123",
	}
	got := Canonicalize(params)

	assert.Equal(t, []Param{
		{Key: "vnp_Amount", Value: "15000000"},
		{Key: "vnp_OrderInfo", Value: "Thanh+toan+don+hang%3Aabc123"},
		{Key: "vnp_TxnRef", Value: "abc123"},
	}, got)
}

func TestSerializeJoinsWithoutEscaping(t *testing.T) {
	s := Serialize([]Param{{Key: "a", Value: "1"}, {Key: "b", Value: "x+y"}})
	assert.Equal(t, "a=1&b=x+y", s)
}

func TestSignIsDeterministicHex(t *testing.T) {
	sig := Sign("a=1&b=2", "secret")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Sign("a=1&b=2", "secret"))
	assert.NotEqual(t, sig, Sign("a=1&b=2", "other"))
	assert.NotEqual(t, sig, Sign("a=1&b=3", "secret"))
}

func TestVerify(t *testing.T) {
	secret := "supersecret"
	params := map[string]string{
		"vnp_Amount":       "15000000",
		"vnp_TxnRef":       "abc123",
		"vnp_ResponseCode": "00",
		"vnp_OrderInfo":    "Thanh toan don hang:abc123",
	}
	sig := Sign(Serialize(Canonicalize(params)), secret)

	t.Run("valid signature", func(t *testing.T) {
		in := clone(params)
		in["vnp_SecureHash"] = sig
		assert.True(t, Verify(in, sig, secret))
	})

	t.Run("hash type field is ignored", func(t *testing.T) {
		in := clone(params)
		in["vnp_SecureHash"] = sig
		in["vnp_SecureHashType"] = "HMACSHA512"
		assert.True(t, Verify(in, sig, secret))
	})

	t.Run("tampered value fails", func(t *testing.T) {
		in := clone(params)
		in["vnp_Amount"] = "15000001"
		in["vnp_SecureHash"] = sig
		assert.False(t, Verify(in, sig, secret))
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		in := clone(params)
		bad := "0" + sig[1:]
		if bad == sig {
			bad = "1" + sig[1:]
		}
		in["vnp_SecureHash"] = bad
		assert.False(t, Verify(in, bad, secret))
	})
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
