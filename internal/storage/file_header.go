package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FileHeaderSize is the fixed length, in bytes, of the file header at the
// start of page 1.
const FileHeaderSize = 100

var fileMagic = [16]byte{'S', 'Q', 'L', 'i', 't', 'e', ' ', 'f', 'o', 'r', 'm', 'a', 't', ' ', '3', 0x00}

// TextEncoding identifies how text-typed record fields are laid out on disk.
type TextEncoding uint32

const (
	TextEncodingUTF8 TextEncoding = iota + 1
	TextEncodingUTF16LE
	TextEncodingUTF16BE
)

func (e TextEncoding) String() string {
	switch e {
	case TextEncodingUTF8:
		return "UTF-8"
	case TextEncodingUTF16LE:
		return "UTF-16LE"
	case TextEncodingUTF16BE:
		return "UTF-16BE"
	default:
		return fmt.Sprintf("TextEncoding(%d)", uint32(e))
	}
}

// Named error kinds for file-header validation, per the format's fixed
// layout. These are sentinel values rather than a hierarchy of types - a
// caller distinguishes them with errors.Is.
var (
	ErrBadMagic      = errors.New("storage: bad file magic")
	ErrBadPageSize   = errors.New("storage: bad page size")
	ErrBadConstField = errors.New("storage: bad payload fraction constant")
	ErrBadReserved   = errors.New("storage: reserved header region is not zero")
	ErrBadEnum       = errors.New("storage: bad text encoding enum")
)

// FileHeader is the decoded and validated 100-byte header at the start of
// page 1.
type FileHeader struct {
	PageSize          uint32
	FileChangeCounter uint32
	SizeInPages       uint32
	SchemaVersion     uint32
	TextEncoding      TextEncoding

	// PageEndPadding is the number of bytes reserved at the tail of every
	// page (the "bytes of unused reserved space" field). Typically 0.
	PageEndPadding uint8
}

// ParseFileHeader validates and decodes the 100-byte file header. buf must
// be exactly FileHeaderSize bytes - the caller is responsible for reading
// the leading slice of page 1.
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) != FileHeaderSize {
		return FileHeader{}, fmt.Errorf("storage: file header must be %d bytes, got %d", FileHeaderSize, len(buf))
	}

	var magic [16]byte
	copy(magic[:], buf[0:16])
	if magic != fileMagic {
		return FileHeader{}, ErrBadMagic
	}

	rawPageSize := binary.BigEndian.Uint16(buf[16:18])
	pageSize, err := decodePageSize(rawPageSize)
	if err != nil {
		return FileHeader{}, err
	}

	pageEndPadding := buf[20]

	maxPayloadFraction := buf[21]
	minPayloadFraction := buf[22]
	leafPayloadFraction := buf[23]
	if maxPayloadFraction != 64 || minPayloadFraction != 32 || leafPayloadFraction != 32 {
		return FileHeader{}, ErrBadConstField
	}

	var reserved [20]byte
	copy(reserved[:], buf[72:92])
	if reserved != ([20]byte{}) {
		return FileHeader{}, ErrBadReserved
	}

	rawEncoding := binary.BigEndian.Uint32(buf[56:60])
	encoding := TextEncoding(rawEncoding)
	switch encoding {
	case TextEncodingUTF8, TextEncodingUTF16LE, TextEncodingUTF16BE:
	default:
		return FileHeader{}, ErrBadEnum
	}

	return FileHeader{
		PageSize:          pageSize,
		FileChangeCounter: binary.BigEndian.Uint32(buf[24:28]),
		SizeInPages:       binary.BigEndian.Uint32(buf[28:32]),
		SchemaVersion:     binary.BigEndian.Uint32(buf[40:44]),
		TextEncoding:      encoding,
		PageEndPadding:    pageEndPadding,
	}, nil
}

// decodePageSize interprets the raw big-endian field at offset 16-17,
// including the sentinel value 1 meaning 65536, and validates that the
// result is a power of two in [512, 32768] (or the 65536 sentinel case).
func decodePageSize(raw uint16) (uint32, error) {
	if raw == 1 {
		return 65536, nil
	}

	pageSize := uint32(raw)
	if pageSize < 512 || pageSize > 32768 || pageSize&(pageSize-1) != 0 {
		return 0, ErrBadPageSize
	}
	return pageSize, nil
}
