// Package schema reads the sqlite_schema table and executes the minimal
// SELECT/CREATE TABLE query surface against a database file.
package schema

import (
	"github.com/joeandaverde/litesql/internal/btree"
	"github.com/joeandaverde/litesql/internal/pager"
	"github.com/joeandaverde/litesql/internal/record"
	"github.com/joeandaverde/litesql/internal/storage"
)

// schemaRootPage is the fixed root page of the sqlite_schema table.
const schemaRootPage = 1

// Database is an open SQLite-format file: its pager plus the decoded and
// validated file header.
type Database struct {
	pager  *pager.Pager
	header storage.FileHeader
}

// Open reads and validates the 100-byte file header from source, then
// opens the pager at the header's page size.
func Open(source pager.Source) (*Database, error) {
	headerBytes, err := pager.ReadFileHeaderBytes(source)
	if err != nil {
		return nil, err
	}
	header, err := storage.ParseFileHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	p := pager.Open(source)
	p.SetPageSize(header.PageSize)

	return &Database{pager: p, header: header}, nil
}

// Header returns the database's decoded file header.
func (db *Database) Header() storage.FileHeader {
	return db.header
}

// Stats reports the underlying pager's cumulative cache hit/miss counts.
func (db *Database) Stats() (hits, misses uint64) {
	return db.pager.Stats()
}

// RowCursor decodes a table B-tree's leaf cells into records, pulling one
// cell at a time and stitching any overflow chain transparently.
type RowCursor struct {
	db     *Database
	cursor *btree.TableCursor
}

// NewRowCursor starts a row-level scan of the table rooted at rootPage.
func (db *Database) NewRowCursor(rootPage uint32) *RowCursor {
	return &RowCursor{
		db:     db,
		cursor: btree.NewTableCursor(db.pager, db.header.PageSize, db.header.PageEndPadding, rootPage),
	}
}

// Next decodes the next row. ok is false once the scan is exhausted.
func (rc *RowCursor) Next() (rec record.Record, rowID int64, ok bool, err error) {
	cell, ok, err := rc.cursor.Next()
	if err != nil || !ok {
		return record.Record{}, 0, ok, err
	}

	buf := make([]byte, cell.Payload.TotalLength)
	if err := btree.CopyInto(*cell.Payload, rc.db.pager, rc.db.header.PageSize, rc.db.header.PageEndPadding, buf); err != nil {
		return record.Record{}, 0, false, err
	}

	rec, err = record.Decode(buf, rc.db.header.TextEncoding)
	if err != nil {
		return record.Record{}, 0, false, err
	}
	return rec, cell.RowID, true, nil
}
