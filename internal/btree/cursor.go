package btree

import (
	"github.com/joeandaverde/litesql/internal/pager"
)

// TableCursor performs a depth-first, left-to-right enumeration of a table
// B-tree's leaf cells, pulling one page at a time. It never prefetches
// pages beyond the one needed to produce the next cell.
type TableCursor struct {
	pager          *pager.Pager
	pageSize       uint32
	pageEndPadding uint8

	// queue holds page numbers not yet visited, front-to-back in the
	// order they must be popped. Expanding an interior page prepends its
	// children (left-to-right, then the rightmost child) ahead of
	// whatever the queue already held - this is what keeps siblings
	// popped in left-to-right order regardless of how deep the tree is.
	queue []uint32

	leafCells []Cell
	leafIdx   int

	err  error
	done bool
}

// NewTableCursor starts a traversal of the table B-tree rooted at
// rootPage.
func NewTableCursor(p *pager.Pager, pageSize uint32, pageEndPadding uint8, rootPage uint32) *TableCursor {
	return &TableCursor{
		pager:          p,
		pageSize:       pageSize,
		pageEndPadding: pageEndPadding,
		queue:          []uint32{rootPage},
	}
}

// Next returns the next leaf cell in key order. ok is false once the
// traversal is exhausted. Any error aborts the traversal; cells already
// returned remain valid.
func (c *TableCursor) Next() (cell Cell, ok bool, err error) {
	if c.err != nil {
		return Cell{}, false, c.err
	}
	if c.done {
		return Cell{}, false, nil
	}

	for {
		if c.leafIdx < len(c.leafCells) {
			cell := c.leafCells[c.leafIdx]
			c.leafIdx++
			return cell, true, nil
		}

		if len(c.queue) == 0 {
			c.done = true
			return Cell{}, false, nil
		}

		pageNum := c.queue[0]
		c.queue = c.queue[1:]

		page, err := c.pager.Get(pageNum)
		if err != nil {
			c.err = err
			return Cell{}, false, err
		}

		header, err := DecodeHeader(page.Data[page.HeaderOffset():])
		if err != nil {
			c.err = err
			return Cell{}, false, err
		}
		if err := header.ExpectType(Table); err != nil {
			c.err = err
			return Cell{}, false, err
		}

		pointers, err := CellPointers(page.Data, page.HeaderOffset(), header)
		if err != nil {
			c.err = err
			return Cell{}, false, err
		}

		if header.Kind == Leaf {
			cells := make([]Cell, 0, len(pointers))
			for _, ptr := range pointers {
				cell, err := ParseCell(page, c.pageSize, c.pageEndPadding, header, int(ptr))
				if err != nil {
					c.err = err
					return Cell{}, false, err
				}
				cells = append(cells, cell)
			}
			c.leafCells = cells
			c.leafIdx = 0
			continue
		}

		children := make([]uint32, 0, len(pointers)+1)
		for _, ptr := range pointers {
			cell, err := ParseCell(page, c.pageSize, c.pageEndPadding, header, int(ptr))
			if err != nil {
				c.err = err
				return Cell{}, false, err
			}
			children = append(children, cell.LeftChild)
		}
		children = append(children, header.RightChild)

		c.queue = append(children, c.queue...)
	}
}
