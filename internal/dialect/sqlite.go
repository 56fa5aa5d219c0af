package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

// SqliteDialect introspects through the pragma table-valued functions,
// shaped to match the common ColumnsQuery row layout. Declared length and
// scale come back NULL; callers parse them out of the raw type expression.
type SqliteDialect struct{}

func (d *SqliteDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`, nil
}

func (d *SqliteDialect) ColumnsQuery(schema, table string) (string, []any) {
	// An INTEGER PRIMARY KEY is the rowid: generated, and never NULL
	// even though notnull reports 0.
	return `SELECT name, lower(type), type, NULL, NULL,
    CASE WHEN "notnull" = 1 OR pk = 1 THEN 'NO' ELSE 'YES' END,
    dflt_value,
    CASE WHEN pk = 1 AND lower(type) = 'integer' THEN 'auto_increment' ELSE '' END
FROM pragma_table_info(?)
ORDER BY cid`,
		[]any{table}
}

func (d *SqliteDialect) ForeignKeysQuery(schema, table string) (string, []any) {
	return `SELECT "from", "table", "to" FROM pragma_foreign_key_list(?)`, []any{table}
}

func (d *SqliteDialect) TableColumnsQuery(schema, table string) (string, []any) {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`, []any{table}
}

// EnumValues returns nil: SQLite has no declared enumerations.
func (d *SqliteDialect) EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error) {
	return nil, nil
}

func (d *SqliteDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *SqliteDialect) UpdateQuery(table string, cols []string, key string) string {
	set := GenerateAssignments(cols, d.Placeholder)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", table, set, key, d.Placeholder(len(cols)))
}

func (d *SqliteDialect) DeleteQuery(table, key string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, key, d.Placeholder(0))
}

func (d *SqliteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SqliteDialect) ReturningSuffix(key string) string {
	return "" // LastInsertId works
}

func (d *SqliteDialect) NormalizeType(dataType, columnType string) string {
	t := DefaultNormalizeType(dataType)
	switch {
	case strings.Contains(t, "int"):
		return "int"
	case t == "varchar" || t == "nvarchar":
		return "varchar"
	case strings.Contains(t, "char"):
		return "char"
	case t == "text" || strings.Contains(t, "clob"):
		return "text"
	case strings.Contains(t, "real") || strings.Contains(t, "floa") ||
		strings.Contains(t, "doub") || t == "decimal" || t == "numeric":
		return "decimal"
	case strings.Contains(t, "date") || strings.Contains(t, "time"):
		return "datetime"
	default:
		return "varchar"
	}
}

func (d *SqliteDialect) SchemaName(input string) string {
	return "" // single implicit schema
}
