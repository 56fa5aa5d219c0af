package dialect

import "database/sql"

// Dialect abstracts database-specific operations: catalog introspection
// queries and statement syntax.
type Dialect interface {
	// Metadata queries (schema introspection). Each returns the SQL text
	// plus its bind arguments for the given target.
	//
	// ColumnsQuery rows scan as:
	//   column_name, data_type, column_type, max_length, numeric_scale,
	//   is_nullable ('YES'/'NO'), column_default, extra
	// in declared column order. extra contains "auto_increment" for
	// generated key columns. max_length and numeric_scale may be NULL;
	// callers fall back to parsing column_type (e.g. "varchar(100)").
	//
	// ForeignKeysQuery rows scan as:
	//   column_name, referenced_table, referenced_column
	TablesQuery(schema string) (string, []any)
	ColumnsQuery(schema, table string) (string, []any)
	ForeignKeysQuery(schema, table string) (string, []any)
	TableColumnsQuery(schema, table string) (string, []any)

	// EnumValues resolves the declared value list for an enumerated or
	// set column. columnType is the raw type expression reported by
	// ColumnsQuery (MySQL: "enum('Y','N')", Postgres: the udt name).
	// Engines without declared enumerations return nil.
	EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error)

	// Query generation.
	InsertQuery(table string, cols []string) string
	UpdateQuery(table string, cols []string, key string) string
	DeleteQuery(table, key string) string
	Placeholder(index int) string // Returns ?, $1, @p1, etc.

	// ReturningSuffix is appended to an INSERT on engines where the
	// generated key comes back as a result row instead of through
	// sql.Result.LastInsertId. Empty otherwise.
	ReturningSuffix(key string) string

	// Helpers.
	// NormalizeType maps an engine type to one of the canonical
	// families: int, decimal, char, varchar, text, enum, set, datetime.
	NormalizeType(dataType, columnType string) string
	SchemaName(input string) string
}
