package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadVarint_Table(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		want     int64
		consumed int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"single byte max", []byte{0x7F}, 127, 1},
		{"two byte", []byte{0x81, 0x7F}, 255, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, n, err := ReadVarint(tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.want, v)
			require.Equal(t, tc.consumed, n)
		})
	}
}

// encodeVarint is a reference encoder used only by tests: the engine is
// read-only and never needs to produce a varint itself.
func encodeVarint(v uint64) []byte {
	if v>>56 != 0 {
		// Full 9-byte form: the 9th byte carries the low 8 bits of v
		// verbatim, the first 8 bytes carry the remaining 56 bits as
		// big-endian 7-bit groups, every one of them flagged continued.
		top56 := v >> 8
		out := make([]byte, 9)
		for i := 7; i >= 0; i-- {
			out[i] = byte(top56&0x7f) | 0x80
			top56 >>= 7
		}
		out[8] = byte(v)
		return out
	}

	var groups [8]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7f)
		v >>= 7
		n++
		if v == 0 {
			break
		}
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := groups[n-1-i]
		if i < n-1 {
			b |= 0x80
		}
		out[i] = b
	}
	return out
}

func TestReadVarint_RoundTrip(t *testing.T) {
	r := require.New(t)

	values := []uint64{0, 1, 127, 128, 255, 16384, 1 << 32, math.MaxInt64, math.MaxUint64}
	for _, v := range values {
		encoded := encodeVarint(v)
		decoded, n, err := ReadVarint(encoded)
		r.NoError(err)
		r.Equal(len(encoded), n)
		r.Equal(int64(v), decoded)
	}
}

func TestReadVarint_AllLengths(t *testing.T) {
	r := require.New(t)

	// 1-byte encodings
	for i := int64(0); i < 128; i++ {
		v, n, err := ReadVarint([]byte{byte(i)})
		r.NoError(err)
		r.Equal(i, v)
		r.Equal(1, n)
	}

	// 8-byte encoding: all continuation bits set except the last byte.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}
	_, n, err := ReadVarint(data)
	r.NoError(err)
	r.Equal(8, n)
}

func TestReadVarint_Truncated(t *testing.T) {
	_, _, err := ReadVarint([]byte{0x81})
	require.ErrorIs(t, err, ErrMalformedVarint)

	_, _, err = ReadVarint(nil)
	require.ErrorIs(t, err, ErrMalformedVarint)

	// Eight continuation bytes with no ninth byte present.
	_, _, err = ReadVarint([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, ErrMalformedVarint)
}
