package btree

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/joeandaverde/litesql/internal/pager"
)

// ErrTruncatedPayload is returned when an overflow chain ends before the
// payload's declared total length has been delivered.
var ErrTruncatedPayload = errors.New("btree: overflow chain truncated before full payload")

// ErrCycleDetected is returned when an overflow chain visits the same page
// twice.
var ErrCycleDetected = errors.New("btree: overflow chain cycle detected")

// PayloadDescriptor locates a cell's payload: a prefix living in the
// originating page plus, if the payload spilled, an overflow page chain
// carrying the remainder.
type PayloadDescriptor struct {
	TotalLength  int64
	SourcePage   *pager.Page
	InPageStart  int
	InPageEnd    int
	OverflowPage uint32
	HasOverflow  bool
}

// usableSize is U in the spill arithmetic: the page size minus the bytes
// reserved at the tail of every page.
func usableSize(pageSize uint32, pageEndPadding uint8) (int64, error) {
	u := int64(pageSize) - int64(pageEndPadding)
	if u <= 35 {
		return 0, fmt.Errorf("btree: usable page size %d too small for payload spill arithmetic", u)
	}
	return u, nil
}

// newPayloadDescriptor computes the in-page/overflow split for a payload of
// length L starting at inPageStart in page, per the spill thresholds: for
// table pages X = U-35; for index pages X = ((U-12)*64/255)-23. M =
// ((U-12)*32/255)-23 in both cases.
func newPayloadDescriptor(pageSize uint32, pageEndPadding uint8, isIndex bool, totalLength int64, page *pager.Page, inPageStart int) (PayloadDescriptor, error) {
	u, err := usableSize(pageSize, pageEndPadding)
	if err != nil {
		return PayloadDescriptor{}, err
	}

	m := ((u - 12) * 32 / 255) - 23
	var x int64
	if isIndex {
		x = ((u - 12) * 64 / 255) - 23
	} else {
		x = u - 35
	}

	if totalLength <= x {
		end := inPageStart + int(totalLength)
		if end > len(page.Data) {
			return PayloadDescriptor{}, fmt.Errorf("btree: in-page payload overruns page")
		}
		return PayloadDescriptor{
			TotalLength: totalLength,
			SourcePage:  page,
			InPageStart: inPageStart,
			InPageEnd:   end,
		}, nil
	}

	k := m + ((totalLength - m) % (u - 4))
	inPageLen := m
	if k <= x {
		inPageLen = k
	}

	end := inPageStart + int(inPageLen)
	if end+4 > len(page.Data) {
		return PayloadDescriptor{}, fmt.Errorf("btree: spilled payload prefix overruns page")
	}

	return PayloadDescriptor{
		TotalLength:  totalLength,
		SourcePage:   page,
		InPageStart:  inPageStart,
		InPageEnd:    end,
		OverflowPage: binary.BigEndian.Uint32(page.Data[end : end+4]),
		HasOverflow:  true,
	}, nil
}

// CopyInto stitches a payload descriptor's in-page prefix and overflow
// chain into a contiguous byte stream, writing exactly len(buf) bytes.
// len(buf) must equal desc.TotalLength. Calling CopyInto twice into
// equal-size buffers yields equal bytes.
func CopyInto(desc PayloadDescriptor, p *pager.Pager, pageSize uint32, pageEndPadding uint8, buf []byte) error {
	if int64(len(buf)) != desc.TotalLength {
		return fmt.Errorf("btree: CopyInto buffer length %d does not match payload length %d", len(buf), desc.TotalLength)
	}

	n := copy(buf, desc.SourcePage.Data[desc.InPageStart:desc.InPageEnd])
	remaining := desc.TotalLength - int64(n)
	if remaining == 0 {
		return nil
	}
	if !desc.HasOverflow {
		return ErrTruncatedPayload
	}

	u, err := usableSize(pageSize, pageEndPadding)
	if err != nil {
		return err
	}
	chunkSize := u - 4

	visited := make(map[uint32]bool, (desc.TotalLength+chunkSize-1)/chunkSize)
	next := desc.OverflowPage

	for remaining > 0 {
		if next == 0 {
			return ErrTruncatedPayload
		}
		if visited[next] {
			return ErrCycleDetected
		}
		visited[next] = true

		page, err := p.Get(next)
		if err != nil {
			return err
		}

		take := chunkSize
		if take > remaining {
			take = remaining
		}
		copy(buf[n:], page.Data[4:4+take])
		n += int(take)
		remaining -= take

		next = binary.BigEndian.Uint32(page.Data[0:4])
	}

	return nil
}
