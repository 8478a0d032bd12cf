// Package shortlink implements the compact recipe identifier scheme used by
// short share links. Encode and Decode are exact inverses over all
// non-negative integers.
package shortlink

import (
	"errors"
	"math"
	"strings"
)

// Alphabet order is fixed: digits, then uppercase, then lowercase. Decode
// depends on this ordering, so it must never change.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = int64(len(alphabet))

var (
	// ErrInvalidInput means the value cannot be encoded (negative number)
	// or the encoded form is structurally invalid (empty string).
	ErrInvalidInput = errors.New("shortlink: invalid input")
	// ErrInvalidEncoding means the string contains a character outside the
	// base62 alphabet.
	ErrInvalidEncoding = errors.New("shortlink: invalid encoding")
)

// Encode converts a non-negative integer into its base62 representation,
// most significant digit first, without padding. Encode(0) is "0".
func Encode(n int64) (string, error) {
	if n < 0 {
		return "", ErrInvalidInput
	}
	if n == 0 {
		return string(alphabet[0]), nil
	}
	var b strings.Builder
	var digits [11]byte // 62^11 > 2^63, never deeper
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = alphabet[n%base]
		n /= base
	}
	b.Write(digits[i:])
	return b.String(), nil
}

// Decode converts a base62 string back into the integer Encode produced.
// The empty string is rejected as invalid input rather than read as zero.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidInput
	}
	var n int64
	for _, r := range s {
		idx := strings.IndexRune(alphabet, r)
		if idx < 0 {
			return 0, ErrInvalidEncoding
		}
		// Values past MaxInt64 cannot come from Encode; without this check
		// an overlong code would silently wrap around.
		if n > (math.MaxInt64-int64(idx))/base {
			return 0, ErrInvalidEncoding
		}
		n = n*base + int64(idx)
	}
	return n, nil
}
