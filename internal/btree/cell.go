package btree

import (
	"encoding/binary"
	"fmt"

	"github.com/joeandaverde/litesql/internal/pager"
	"github.com/joeandaverde/litesql/internal/storage"
)

// Cell is one entry of a table B-tree page. LeftChild is set on interior
// cells; RowID is set on every cell; Payload is set on leaf cells.
type Cell struct {
	LeftChild uint32
	RowID     int64
	Payload   *PayloadDescriptor
}

// ParseCell decodes the cell at the physical offset cellOffset within
// page, per the page's (type, kind). header must have been decoded from
// the same page. Only table-leaf and table-interior cells are implemented:
// index B-tree traversal is out of scope.
func ParseCell(page *pager.Page, pageSize uint32, pageEndPadding uint8, header Header, cellOffset int) (Cell, error) {
	if err := header.ExpectType(Table); err != nil {
		return Cell{}, err
	}

	data := page.Data
	if cellOffset < 0 || cellOffset >= len(data) {
		return Cell{}, fmt.Errorf("btree: cell offset %d out of page bounds", cellOffset)
	}

	switch header.Kind {
	case Leaf:
		length, n1, err := storage.ReadVarint(data[cellOffset:])
		if err != nil {
			return Cell{}, err
		}
		rowID, n2, err := storage.ReadVarint(data[cellOffset+n1:])
		if err != nil {
			return Cell{}, err
		}

		payloadStart := cellOffset + n1 + n2
		desc, err := newPayloadDescriptor(pageSize, pageEndPadding, false, length, page, payloadStart)
		if err != nil {
			return Cell{}, err
		}

		return Cell{RowID: rowID, Payload: &desc}, nil

	case Interior:
		if cellOffset+4 > len(data) {
			return Cell{}, fmt.Errorf("btree: interior cell left-child pointer overruns page")
		}
		leftChild := binary.BigEndian.Uint32(data[cellOffset : cellOffset+4])
		rowID, _, err := storage.ReadVarint(data[cellOffset+4:])
		if err != nil {
			return Cell{}, err
		}
		return Cell{LeftChild: leftChild, RowID: rowID}, nil
	}

	return Cell{}, fmt.Errorf("btree: unreachable page kind %v", header.Kind)
}
