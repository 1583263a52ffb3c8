package schema

import (
	"fmt"

	"github.com/joeandaverde/litesql/internal/record"
)

// Row is one row of the implicit sqlite_schema table: five positional
// fields (type, name, tbl_name, root_page, sql).
type Row struct {
	Type     string
	Name     string
	TblName  string
	RootPage int64
	SQL      string
}

// Schema traverses page 1 as a table B-tree and decodes each leaf cell as
// a schema row.
func (db *Database) Schema() ([]Row, error) {
	cursor := db.NewRowCursor(schemaRootPage)

	var rows []Row
	for {
		rec, rowID, ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		row, err := rowFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("schema: row %d: %w", rowID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowFromRecord(rec record.Record) (Row, error) {
	fields := rec.Fields
	if len(fields) != 5 {
		return Row{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	typ, _ := fields[0].(string)
	name, _ := fields[1].(string)
	tblName, _ := fields[2].(string)
	sqlText, _ := fields[4].(string)

	var rootPage int64
	if v, ok := fields[3].(int64); ok {
		rootPage = v
	}

	return Row{Type: typ, Name: name, TblName: tblName, RootPage: rootPage, SQL: sqlText}, nil
}

// Tables lists the names of every row of type "table" in sqlite_schema -
// the engine's `.tables`-equivalent.
func (db *Database) Tables() ([]string, error) {
	rows, err := db.Schema()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, row := range rows {
		if row.Type == "table" {
			names = append(names, row.Name)
		}
	}
	return names, nil
}

// FindTable resolves a table by name, failing with ErrNoSuchTable if
// sqlite_schema has no row of type "table" with that name.
func (db *Database) FindTable(name string) (Row, error) {
	rows, err := db.Schema()
	if err != nil {
		return Row{}, err
	}

	for _, row := range rows {
		if row.Type == "table" && row.Name == name {
			return row, nil
		}
	}
	return Row{}, fmt.Errorf("%w: %s", ErrNoSuchTable, name)
}
