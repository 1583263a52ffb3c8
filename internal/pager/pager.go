// Package pager implements the caching page layer over a seekable byte
// source: it turns 1-based page numbers into fixed-size, immutable page
// buffers.
package pager

import (
	"errors"
	"fmt"
	"io"
)

// PageSize bounds, per the file format: a power of two in [512, 32768], or
// the 65536 sentinel handled by the file-header reader before a page size
// ever reaches the pager.
const (
	MinPageSize = 512
	MaxPageSize = 65536
)

var (
	// ErrIO is returned when the underlying byte source fails a read.
	ErrIO = errors.New("pager: io error")
	// ErrShortRead is returned when the source yields fewer bytes than a
	// full page before reaching EOF.
	ErrShortRead = errors.New("pager: short read")
	// ErrPageSizeNotSet is returned by Get before SetPageSize has been
	// called with a value learned from the file header.
	ErrPageSizeNotSet = errors.New("pager: page size not set")
)

// Source is the seekable byte source a Pager reads pages from. *os.File and
// *bytes.Reader both satisfy it.
type Source interface {
	ReadAt(p []byte, off int64) (n int, err error)
}

// Page is an immutable, physically-addressed page buffer. Data always holds
// exactly the page's full size, including the 100-byte file header on page
// 1 - callers that need the B-tree header on page 1 skip HeaderOffset()
// bytes; callers following cell pointers always index Data directly, since
// the format expresses cell-pointer offsets relative to the physical page
// start.
type Page struct {
	Number uint32
	Data   []byte
}

// HeaderOffset is the number of leading bytes that are not B-tree header on
// this page: 100 on page 1 (the file header), 0 elsewhere.
func (p *Page) HeaderOffset() int {
	if p.Number == 1 {
		return 100
	}
	return 0
}

// Pager caches page buffers loaded from Source, keyed by page number. It
// has no eviction policy: the working set is bounded by one query's
// traversal, and correctness never depends on eviction.
type Pager struct {
	source   Source
	pageSize uint32
	cache    map[uint32]*Page

	hits   uint64
	misses uint64
}

// Open associates a Pager with source. The page size is not yet known -
// call SetPageSize once the file header has been read from page 1.
func Open(source Source) *Pager {
	return &Pager{
		source: source,
		cache:  make(map[uint32]*Page),
	}
}

// SetPageSize installs the real page size learned from the file header and
// invalidates any pages cached under a provisional size.
func (p *Pager) SetPageSize(pageSize uint32) {
	if p.pageSize == pageSize {
		return
	}
	p.pageSize = pageSize
	p.cache = make(map[uint32]*Page)
}

// PageSize returns the page size last installed by SetPageSize, or 0 if
// none has been set yet.
func (p *Pager) PageSize() uint32 {
	return p.pageSize
}

// Get returns the buffer for the 1-based page id, loading it from the
// source on a cache miss and caching the result for subsequent calls. Two
// successive calls for the same id return buffers with identical contents.
func (p *Pager) Get(id uint32) (*Page, error) {
	if p.pageSize == 0 {
		return nil, ErrPageSizeNotSet
	}
	if id < 1 {
		return nil, fmt.Errorf("pager: invalid page id %d", id)
	}

	if page, ok := p.cache[id]; ok {
		p.hits++
		return page, nil
	}

	offset := int64(id-1) * int64(p.pageSize)
	data := make([]byte, p.pageSize)
	n, err := p.source.ReadAt(data, offset)
	if n < len(data) {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		return nil, ErrShortRead
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	page := &Page{Number: id, Data: data}
	p.cache[id] = page
	p.misses++
	return page, nil
}

// Stats reports the pager's cumulative cache hit and miss counts.
func (p *Pager) Stats() (hits, misses uint64) {
	return p.hits, p.misses
}

// ReadFileHeaderBytes reads the first 100 bytes of page 1 directly from the
// source, bypassing the cache - this is the bootstrap read a caller uses to
// learn the real page size before a single SetPageSize call makes Get
// usable.
func ReadFileHeaderBytes(source Source) ([]byte, error) {
	buf := make([]byte, 100)
	n, err := source.ReadAt(buf, 0)
	if n < len(buf) {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		return nil, ErrShortRead
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return buf, nil
}
