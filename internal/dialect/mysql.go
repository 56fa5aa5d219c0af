package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		[]any{schema}
}

func (d *MysqlDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, CHARACTER_MAXIMUM_LENGTH, NUMERIC_SCALE, IS_NULLABLE, COLUMN_DEFAULT, EXTRA
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`,
		[]any{schema, table}
}

func (d *MysqlDialect) ForeignKeysQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND REFERENCED_TABLE_NAME IS NOT NULL`,
		[]any{schema, table}
}

func (d *MysqlDialect) TableColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`,
		[]any{schema, table}
}

// EnumValues parses the declared value list out of the COLUMN_TYPE
// expression; MySQL needs no extra round trip.
func (d *MysqlDialect) EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error) {
	return ParseEnumList(columnType), nil
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MysqlDialect) UpdateQuery(table string, cols []string, key string) string {
	set := GenerateAssignments(cols, d.Placeholder)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", table, set, key, d.Placeholder(len(cols)))
}

func (d *MysqlDialect) DeleteQuery(table, key string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, key, d.Placeholder(0))
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) ReturningSuffix(key string) string {
	return "" // LastInsertId works
}

func (d *MysqlDialect) NormalizeType(dataType, columnType string) string {
	switch t := strings.ToLower(dataType); t {
	case "tinyint", "smallint", "mediumint", "int", "integer", "bigint", "year":
		return "int"
	case "decimal", "numeric", "float", "double":
		return "decimal"
	case "char":
		return "char"
	case "varchar":
		return "varchar"
	case "tinytext", "text", "mediumtext", "longtext":
		return "text"
	case "enum":
		return "enum"
	case "set":
		return "set"
	case "date", "datetime", "timestamp", "time":
		return "datetime"
	default:
		return t
	}
}

func (d *MysqlDialect) SchemaName(input string) string {
	return DefaultSchemaName(input)
}
