package schema

import (
	"fmt"

	"github.com/joeandaverde/litesql/internal/sqlsurface"
)

// QueryResult is the projected output of a SELECT: a column name list and
// the rows, each aligned to those columns by position.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Select executes `SELECT * FROM <table>;` or `SELECT c1, c2, ... FROM
// <table>;`. It resolves the table against sqlite_schema, parses the
// table's own CREATE TABLE statement for column order, traverses the
// table's root page, and projects the requested columns from each
// decoded row.
func (db *Database) Select(sql string) (*QueryResult, error) {
	stmt, err := sqlsurface.ParseSelect(sql)
	if err != nil {
		return nil, err
	}

	tableRow, err := db.FindTable(stmt.Table)
	if err != nil {
		return nil, err
	}

	_, columns, err := sqlsurface.ParseCreateTable(tableRow.SQL)
	if err != nil {
		return nil, err
	}

	columnIndex := make(map[string]int, len(columns))
	columnNames := make([]string, len(columns))
	for i, c := range columns {
		columnIndex[c.Name] = i
		columnNames[i] = c.Name
	}

	var projectIdx []int
	var projectNames []string
	if stmt.Star {
		projectNames = columnNames
		projectIdx = make([]int, len(columns))
		for i := range columns {
			projectIdx[i] = i
		}
	} else {
		for _, name := range stmt.Columns {
			idx, ok := columnIndex[name]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrNoSuchColumn, name)
			}
			projectIdx = append(projectIdx, idx)
			projectNames = append(projectNames, name)
		}
	}

	cursor := db.NewRowCursor(uint32(tableRow.RootPage))
	var rows [][]any
	for {
		rec, _, ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		projected := make([]any, len(projectIdx))
		for i, idx := range projectIdx {
			if idx < len(rec.Fields) {
				projected[i] = rec.Fields[idx]
			}
		}
		rows = append(rows, projected)
	}

	return &QueryResult{Columns: projectNames, Rows: rows}, nil
}
