// Package sqlsurface wraps github.com/xwb1989/sqlparser to produce the
// minimal structural shape the schema and query layer consumes: a
// SELECT's table and column list, and a CREATE TABLE's ordered column
// definitions. It is the external collaborator the core's query execution
// delegates all SQL grammar to.
package sqlsurface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ErrParseError is returned when a statement does not match one of the two
// accepted shapes: `SELECT <cols> FROM <table>;` or `CREATE TABLE <table>
// (<col_def>, ...)`.
var ErrParseError = errors.New("sqlsurface: statement did not match the accepted grammar")

// SelectStatement is the structural shape consumed from a parsed SELECT:
// either every column (Star) or an explicit, ordered column name list.
type SelectStatement struct {
	Table   string
	Star    bool
	Columns []string
}

// ColumnDef is one column of a parsed CREATE TABLE.
type ColumnDef struct {
	Name    string
	Type    string
	NotNull bool
}

// normalize strips SQLite double-quoted identifiers, which the underlying
// MySQL-flavored grammar does not accept.
func normalize(sql string) string {
	return strings.TrimSpace(strings.ReplaceAll(sql, `"`, ""))
}

// ParseSelect parses `SELECT <columns> FROM <identifier> ;`.
func ParseSelect(sql string) (SelectStatement, error) {
	stmt, err := sqlparser.Parse(normalize(sql))
	if err != nil {
		return SelectStatement{}, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return SelectStatement{}, ErrParseError
	}
	if len(sel.From) != 1 {
		return SelectStatement{}, ErrParseError
	}

	aliased, ok := sel.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return SelectStatement{}, ErrParseError
	}
	tableName, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return SelectStatement{}, ErrParseError
	}

	result := SelectStatement{Table: tableName.Name.String()}
	for _, se := range sel.SelectExprs {
		switch expr := se.(type) {
		case *sqlparser.StarExpr:
			result.Star = true
		case *sqlparser.AliasedExpr:
			colName, ok := expr.Expr.(*sqlparser.ColName)
			if !ok {
				return SelectStatement{}, ErrParseError
			}
			result.Columns = append(result.Columns, colName.Name.String())
		default:
			return SelectStatement{}, ErrParseError
		}
	}

	if !result.Star && len(result.Columns) == 0 {
		return SelectStatement{}, ErrParseError
	}

	return result, nil
}

// ParseCreateTable parses `CREATE TABLE <identifier> ( <col_def> ( ,
// <col_def> )* )` where each col_def is `<identifier> <identifier> [ NOT
// NULL ]`, returning the ordered column definitions.
func ParseCreateTable(sql string) (string, []ColumnDef, error) {
	stmt, err := sqlparser.Parse(normalize(sql))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.Action != sqlparser.CreateStr || ddl.TableSpec == nil {
		return "", nil, ErrParseError
	}

	columns := make([]ColumnDef, 0, len(ddl.TableSpec.Columns))
	for _, col := range ddl.TableSpec.Columns {
		columns = append(columns, ColumnDef{
			Name:    col.Name.String(),
			Type:    col.Type.Type,
			NotNull: bool(col.Type.NotNull),
		})
	}

	return ddl.NewName.Name.String(), columns, nil
}
