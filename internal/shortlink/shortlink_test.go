package shortlink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{9, "9"},
		{10, "A"},
		{35, "Z"},
		{36, "a"},
		{61, "z"},
		{62, "10"},
		{63, "11"},
		{3843, "zz"},
		{3844, "100"},
		{123456789, "8M0kX"},
	}

	for _, tt := range tests {
		got, err := Encode(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Encode(%d)", tt.n)
	}
}

func TestEncodeRejectsNegative(t *testing.T) {
	_, err := Encode(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeRejectsEmptyString(t *testing.T) {
	_, err := Decode("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeRejectsNonAlphabetCharacters(t *testing.T) {
	for _, s := range []string{"a!b", " 1", "abc-", "й", "1.0"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrInvalidEncoding, "Decode(%q)", s)
	}
}

func TestDecodeRejectsValuesPastMaxInt64(t *testing.T) {
	// "AzL8n0Y58m7" is Encode(MaxInt64), the largest code Encode can emit.
	encodedMax, err := Encode(math.MaxInt64)
	require.NoError(t, err)
	require.Equal(t, "AzL8n0Y58m7", encodedMax)

	n, err := Decode(encodedMax)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), n)

	// One past the maximum, all-z at the same width, and anything longer
	// must fail instead of wrapping around to a small positive value.
	for _, s := range []string{"AzL8n0Y58m8", "zzzzzzzzzzz", "100000000000", "zzzzzzzzzzzzzzz"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrInvalidEncoding, "Decode(%q)", s)
	}
}

func TestRoundTrip(t *testing.T) {
	// Dense sweep over the low range plus spot checks further out.
	for n := int64(0); n <= 250_000; n++ {
		s, err := Encode(n)
		require.NoError(t, err)
		got, err := Decode(s)
		require.NoError(t, err)
		require.Equal(t, n, got, "round trip of %d via %q", n, s)
	}

	for _, n := range []int64{1 << 20, 1 << 31, 1<<62 - 1, 1<<63 - 1} {
		s, err := Encode(n)
		require.NoError(t, err)
		got, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}
