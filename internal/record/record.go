// Package record decodes SQLite records: the variable-length header of
// serial-type varints followed by the field bodies they describe.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/joeandaverde/litesql/internal/storage"
)

var (
	// ErrMalformedRecord is returned when a record's header or body
	// overruns the payload, or its declared lengths are inconsistent.
	ErrMalformedRecord = errors.New("record: malformed record")
	// ErrReservedSerialType is returned for serial type 10 or 11, which
	// the format reserves and never assigns a meaning to.
	ErrReservedSerialType = errors.New("record: reserved serial type")
	// ErrUnsupportedEncoding is returned when a text field's declared
	// encoding is not UTF-8, which is the only encoding this engine
	// decodes.
	ErrUnsupportedEncoding = errors.New("record: unsupported text encoding")
)

// Record is a decoded, positional tuple of typed field values. Each Fields
// entry holds nil, int64, float64, []byte (blob), or string (text).
type Record struct {
	Fields []any
}

// Decode parses a record out of payload, which must already be a
// contiguous byte stream - the caller stitches any overflow chain first.
// Text fields are decoded as UTF-8; any other declared encoding fails with
// ErrUnsupportedEncoding.
func Decode(payload []byte, encoding storage.TextEncoding) (Record, error) {
	headerLength, n, err := storage.ReadVarint(payload)
	if err != nil {
		return Record{}, fmt.Errorf("record: reading header length: %w", err)
	}
	if headerLength < 0 || int(headerLength) > len(payload) {
		return Record{}, fmt.Errorf("%w: header length %d overruns %d-byte payload", ErrMalformedRecord, headerLength, len(payload))
	}

	remaining := int(headerLength) - n
	if remaining < 0 {
		return Record{}, fmt.Errorf("%w: header length %d shorter than its own varint", ErrMalformedRecord, headerLength)
	}

	offset := n
	var serialTypes []int64
	for remaining > 0 {
		st, width, err := storage.ReadVarint(payload[offset:])
		if err != nil {
			return Record{}, fmt.Errorf("record: reading serial type: %w", err)
		}
		serialTypes = append(serialTypes, st)
		offset += width
		remaining -= width
		if remaining < 0 {
			return Record{}, fmt.Errorf("%w: serial type vector overruns header length", ErrMalformedRecord)
		}
	}

	pos := int(headerLength)
	fields := make([]any, 0, len(serialTypes))
	for _, st := range serialTypes {
		size, err := bodySize(st)
		if err != nil {
			return Record{}, err
		}
		if pos+size > len(payload) {
			return Record{}, fmt.Errorf("%w: field body overruns payload", ErrMalformedRecord)
		}

		value, err := decodeField(st, payload[pos:pos+size], encoding)
		if err != nil {
			return Record{}, err
		}
		fields = append(fields, value)
		pos += size
	}

	return Record{Fields: fields}, nil
}

func bodySize(serialType int64) (int, error) {
	switch {
	case serialType == 0, serialType == 8, serialType == 9:
		return 0, nil
	case serialType == 1:
		return 1, nil
	case serialType == 2:
		return 2, nil
	case serialType == 3:
		return 3, nil
	case serialType == 4:
		return 4, nil
	case serialType == 5:
		return 6, nil
	case serialType == 6:
		return 8, nil
	case serialType == 7:
		return 8, nil
	case serialType == 10, serialType == 11:
		return 0, ErrReservedSerialType
	case serialType >= 12 && serialType%2 == 0:
		return int((serialType - 12) / 2), nil
	case serialType >= 13:
		return int((serialType - 13) / 2), nil
	default:
		return 0, fmt.Errorf("%w: negative serial type %d", ErrMalformedRecord, serialType)
	}
}

func decodeField(serialType int64, body []byte, encoding storage.TextEncoding) (any, error) {
	switch {
	case serialType == 0:
		return nil, nil
	case serialType == 1:
		return int64(int8(body[0])), nil
	case serialType == 2:
		return int64(int16(binary.BigEndian.Uint16(body))), nil
	case serialType == 3:
		return decodeInt24(body), nil
	case serialType == 4:
		return int64(int32(binary.BigEndian.Uint32(body))), nil
	case serialType == 5:
		return decodeInt48(body), nil
	case serialType == 6:
		return int64(binary.BigEndian.Uint64(body)), nil
	case serialType == 7:
		return math.Float64frombits(binary.BigEndian.Uint64(body)), nil
	case serialType == 8:
		return int64(0), nil
	case serialType == 9:
		return int64(1), nil
	case serialType >= 12 && serialType%2 == 0:
		blob := make([]byte, len(body))
		copy(blob, body)
		return blob, nil
	case serialType >= 13:
		if encoding != storage.TextEncodingUTF8 {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, encoding)
		}
		return string(body), nil
	default:
		return nil, fmt.Errorf("%w: unhandled serial type %d", ErrMalformedRecord, serialType)
	}
}

func decodeInt24(body []byte) int64 {
	v := uint32(body[0])<<16 | uint32(body[1])<<8 | uint32(body[2])
	if v&0x800000 != 0 {
		v |= 0xFF000000
	}
	return int64(int32(v))
}

func decodeInt48(body []byte) int64 {
	v := uint64(body[0])<<40 | uint64(body[1])<<32 | uint64(body[2])<<24 |
		uint64(body[3])<<16 | uint64(body[4])<<8 | uint64(body[5])
	if v&0x0000800000000000 != 0 {
		v |= 0xFFFF000000000000
	}
	return int64(v)
}
