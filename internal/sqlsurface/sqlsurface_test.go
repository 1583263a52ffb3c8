package sqlsurface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelect_Star(t *testing.T) {
	r := require.New(t)

	stmt, err := ParseSelect("SELECT * FROM users;")
	r.NoError(err)
	r.Equal("users", stmt.Table)
	r.True(stmt.Star)
	r.Empty(stmt.Columns)
}

func TestParseSelect_NamedColumns(t *testing.T) {
	r := require.New(t)

	stmt, err := ParseSelect("SELECT id, name FROM users;")
	r.NoError(err)
	r.Equal("users", stmt.Table)
	r.False(stmt.Star)
	r.Equal([]string{"id", "name"}, stmt.Columns)
}

func TestParseSelect_RejectsNonSelect(t *testing.T) {
	_, err := ParseSelect("CREATE TABLE users (id integer);")
	require.ErrorIs(t, err, ErrParseError)
}

func TestParseSelect_RejectsGarbage(t *testing.T) {
	_, err := ParseSelect("not even sql")
	require.ErrorIs(t, err, ErrParseError)
}

func TestParseCreateTable(t *testing.T) {
	r := require.New(t)

	name, cols, err := ParseCreateTable("CREATE TABLE users (id integer, name text not null)")
	r.NoError(err)
	r.Equal("users", name)
	r.Equal([]ColumnDef{
		{Name: "id", Type: "integer"},
		{Name: "name", Type: "text", NotNull: true},
	}, cols)
}

func TestParseCreateTable_StripsQuotedIdentifiers(t *testing.T) {
	r := require.New(t)

	name, cols, err := ParseCreateTable(`CREATE TABLE "users" ("id" integer, "name" text)`)
	r.NoError(err)
	r.Equal("users", name)
	r.Len(cols, 2)
}

func TestParseCreateTable_RejectsNonDDL(t *testing.T) {
	_, _, err := ParseCreateTable("SELECT * FROM users;")
	require.ErrorIs(t, err, ErrParseError)
}
