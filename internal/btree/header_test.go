package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leafHeaderBytes(flag byte, cellCount uint16, contentOffset uint16) []byte {
	buf := make([]byte, 8)
	buf[0] = flag
	buf[3] = byte(cellCount >> 8)
	buf[4] = byte(cellCount)
	buf[5] = byte(contentOffset >> 8)
	buf[6] = byte(contentOffset)
	return buf
}

func interiorHeaderBytes(flag byte, cellCount uint16, contentOffset uint16, rightChild uint32) []byte {
	buf := append(leafHeaderBytes(flag, cellCount, contentOffset), make([]byte, 4)...)
	buf[8] = byte(rightChild >> 24)
	buf[9] = byte(rightChild >> 16)
	buf[10] = byte(rightChild >> 8)
	buf[11] = byte(rightChild)
	return buf
}

func TestDecodeHeader_FlagRoundTrip(t *testing.T) {
	r := require.New(t)

	h, err := DecodeHeader(leafHeaderBytes(0x0d, 2, 100))
	r.NoError(err)
	r.Equal(Leaf, h.Kind)
	r.Equal(Table, h.Type)

	h, err = DecodeHeader(interiorHeaderBytes(0x05, 2, 100, 7))
	r.NoError(err)
	r.Equal(Interior, h.Kind)
	r.Equal(Table, h.Type)
	r.Equal(uint32(7), h.RightChild)

	h, err = DecodeHeader(leafHeaderBytes(0x0a, 0, 0))
	r.NoError(err)
	r.Equal(Leaf, h.Kind)
	r.Equal(Index, h.Type)

	h, err = DecodeHeader(interiorHeaderBytes(0x02, 0, 0, 3))
	r.NoError(err)
	r.Equal(Interior, h.Kind)
	r.Equal(Index, h.Type)

	_, err = DecodeHeader(leafHeaderBytes(0x99, 0, 0))
	r.ErrorIs(err, ErrBadFlag)
}

func TestDecodeHeader_ContentOffsetSentinel(t *testing.T) {
	r := require.New(t)

	h, err := DecodeHeader(leafHeaderBytes(0x0d, 0, 0))
	r.NoError(err)
	r.Equal(uint32(65536), h.CellContentOffset)
}

func TestHeader_ExpectType(t *testing.T) {
	h, err := DecodeHeader(leafHeaderBytes(0x0d, 0, 0))
	require.NoError(t, err)
	require.NoError(t, h.ExpectType(Table))
	require.ErrorIs(t, h.ExpectType(Index), ErrPageKindMismatch)
}

func TestCellPointers(t *testing.T) {
	r := require.New(t)

	page := make([]byte, 512)
	copy(page, leafHeaderBytes(0x0d, 2, 400))
	// Two pointers following the 8-byte leaf header.
	page[8], page[9] = 0x01, 0x90 // 400
	page[10], page[11] = 0x01, 0xF4 // 500

	header, err := DecodeHeader(page)
	r.NoError(err)

	pointers, err := CellPointers(page, 0, header)
	r.NoError(err)
	r.Equal([]uint16{400, 500}, pointers)
}
