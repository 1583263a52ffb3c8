package schema

import "errors"

var (
	// ErrNoSuchTable is returned when a query names a table absent from
	// sqlite_schema.
	ErrNoSuchTable = errors.New("schema: no such table")
	// ErrNoSuchColumn is returned when a query names a column absent
	// from the resolved table's column definitions.
	ErrNoSuchColumn = errors.New("schema: no such column")
)
