package schema

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"grimoire/internal/dialect"
)

const fixtureSchema = `
CREATE TABLE books (
	book_id INTEGER PRIMARY KEY,
	book VARCHAR(100) NOT NULL,
	abbreviation VARCHAR(10) NOT NULL,
	included VARCHAR(1) NOT NULL DEFAULT 'Y'
);
CREATE TABLE tags (
	tag_id INTEGER PRIMARY KEY,
	tag VARCHAR(40) NOT NULL
);
CREATE TABLE spells (
	spell_id INTEGER PRIMARY KEY,
	spell VARCHAR(80) NOT NULL,
	description TEXT,
	drain_modifier INTEGER,
	book_id INTEGER NOT NULL REFERENCES books(book_id),
	page INTEGER,
	import_id VARCHAR(20),
	deleted INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE spell_tags (
	spell_id INTEGER NOT NULL REFERENCES spells(spell_id),
	tag_id INTEGER NOT NULL REFERENCES tags(tag_id)
);
`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "grimoire.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)
	return db
}

func newTestIntrospector(db *sql.DB) *Introspector {
	return NewIntrospector(db, &dialect.SqliteDialect{}, "")
}

func TestDescribeColumns(t *testing.T) {
	db := setupDB(t)
	desc, err := newTestIntrospector(db).Describe("books")
	require.NoError(t, err)

	require.Len(t, desc.Columns, 4)

	names := []string{}
	for _, c := range desc.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"book_id", "book", "abbreviation", "included"}, names,
		"columns must come back in declared order")

	key := desc.Column("book_id")
	assert.True(t, key.IsAutoGenerated)
	assert.False(t, key.IsNullable)
	assert.Equal(t, TypeInteger, key.DataType)
	assert.Same(t, key, desc.Key())

	book := desc.Column("book")
	assert.Equal(t, TypeVarString, book.DataType)
	assert.False(t, book.IsNullable)
	assert.Equal(t, 100, book.MaxLength, "length parsed from the raw type expression")

	included := desc.Column("included")
	assert.True(t, included.HasDefault)
	assert.Equal(t, "Y", included.Default)
}

func TestDescribeUnknownTable(t *testing.T) {
	db := setupDB(t)
	_, err := newTestIntrospector(db).Describe("ghosts")
	require.Error(t, err)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "ghosts", unavailable.Table)
	assert.True(t, errors.Is(err, ErrNoSuchTable))
}

func TestDescribeEmptyTableName(t *testing.T) {
	db := setupDB(t)
	_, err := newTestIntrospector(db).Describe("")
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestDescribeIdempotent(t *testing.T) {
	db := setupDB(t)
	in := newTestIntrospector(db)

	first, err := in.Describe("spells")
	require.NoError(t, err)
	second, err := in.Describe("spells")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestForeignKeyOptionsSortedByLabel(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO books (book, abbreviation) VALUES
		('Street Magic', 'SM'), ('Core Rules', 'CR'), ('Arcana Unbound', 'AU')`)
	require.NoError(t, err)

	desc, err := newTestIntrospector(db).Describe("spells")
	require.NoError(t, err)

	bookID := desc.Column("book_id")
	require.NotNil(t, bookID.Ref)
	assert.Equal(t, &ForeignKey{Table: "books", Column: "book_id", Label: "book"}, bookID.Ref)

	labels := []string{}
	for _, p := range bookID.Options.Pairs() {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Arcana Unbound", "Core Rules", "Street Magic"}, labels)

	// Plain integers without a constraint get no options.
	assert.Nil(t, desc.Column("page").Options)
	assert.Nil(t, desc.Column("page").Ref)
}

func TestForeignKeyOptionsNoConstraint(t *testing.T) {
	db := setupDB(t)
	r := &OptionResolver{DB: db, Dialect: &dialect.SqliteDialect{}}

	opts, ref, err := r.ForeignKeyOptions("spells", "page")
	require.NoError(t, err)
	assert.Nil(t, ref)
	assert.Equal(t, 0, opts.Len())
}

func TestDeclaredLabelColumn(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO books (book, abbreviation) VALUES ('Core Rules', 'CR')`)
	require.NoError(t, err)

	in := newTestIntrospector(db)
	in.Labels = map[string]string{"books": "abbreviation"}

	desc, err := in.Describe("spells")
	require.NoError(t, err)

	bookID := desc.Column("book_id")
	assert.Equal(t, "abbreviation", bookID.Ref.Label)
	assert.Equal(t, []Option{{Value: "1", Label: "CR"}}, bookID.Options.Pairs())
}

func TestTablesAndIds(t *testing.T) {
	db := setupDB(t)
	in := newTestIntrospector(db)

	tables, err := in.Tables()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"books", "tags", "spells", "spell_tags"}, tables)

	_, err = db.Exec(`INSERT INTO books (book, abbreviation) VALUES ('Core Rules', 'CR'), ('Street Magic', 'SM')`)
	require.NoError(t, err)

	ids, err := in.Ids("books", "book_id")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"1": true, "2": true}, ids)
}

func TestEnumOptionsFromColumnType(t *testing.T) {
	db := setupDB(t)
	// MySQL resolves enums out of the raw type expression; exercise the
	// resolver through the mysql dialect's parse path.
	r := &OptionResolver{DB: db, Dialect: &dialect.MysqlDialect{}}
	col := &Column{Name: "included", DataType: TypeEnum, RawType: "enum('Y','N')"}

	opts, err := r.EnumOptions("books", col)
	require.NoError(t, err)
	assert.Equal(t, []Option{{Value: "Y", Label: "Y"}, {Value: "N", Label: "N"}}, opts.Pairs())
	assert.True(t, opts.Has("Y"))
	assert.False(t, opts.Has("maybe"))
}
