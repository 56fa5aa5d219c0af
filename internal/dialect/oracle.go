package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

// OracleDialect works against the current user's objects (USER_TAB_COLUMNS
// and friends); the configured schema name is not consulted.
type OracleDialect struct{}

func (d *OracleDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME`, nil
}

func (d *OracleDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT
    t.COLUMN_NAME,
    t.DATA_TYPE,
    t.DATA_TYPE || CASE WHEN t.DATA_LENGTH IS NOT NULL THEN '(' || t.DATA_LENGTH || ')' ELSE '' END,
    CASE WHEN t.DATA_TYPE LIKE '%CHAR%' THEN t.CHAR_LENGTH ELSE NULL END,
    t.DATA_SCALE,
    CASE t.NULLABLE WHEN 'Y' THEN 'YES' ELSE 'NO' END,
    t.DATA_DEFAULT,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'auto_increment' ELSE '' END
FROM USER_TAB_COLUMNS t
WHERE t.TABLE_NAME = UPPER(:1)
ORDER BY t.COLUMN_ID`,
		[]any{table}
}

func (d *OracleDialect) ForeignKeysQuery(schema, table string) (string, []any) {
	return `SELECT cc.COLUMN_NAME, r.TABLE_NAME, rcc.COLUMN_NAME
FROM USER_CONSTRAINTS c
JOIN USER_CONS_COLUMNS cc ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME AND c.OWNER = cc.OWNER
JOIN USER_CONSTRAINTS r ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME AND c.R_OWNER = r.OWNER
JOIN USER_CONS_COLUMNS rcc ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME AND r.OWNER = rcc.OWNER AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R' AND c.TABLE_NAME = UPPER(:1)`,
		[]any{table}
}

func (d *OracleDialect) TableColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME FROM USER_TAB_COLUMNS WHERE TABLE_NAME = UPPER(:1) ORDER BY COLUMN_ID`,
		[]any{table}
}

// EnumValues returns nil: Oracle has no declared enumerations.
func (d *OracleDialect) EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error) {
	return nil, nil
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *OracleDialect) UpdateQuery(table string, cols []string, key string) string {
	set := GenerateAssignments(cols, d.Placeholder)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", table, set, key, d.Placeholder(len(cols)))
}

func (d *OracleDialect) DeleteQuery(table, key string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, key, d.Placeholder(0))
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) ReturningSuffix(key string) string {
	// go-ora implements neither LastInsertId nor scannable RETURNING;
	// inserting a new row surfaces the driver error to the caller.
	return ""
}

func (d *OracleDialect) NormalizeType(dataType, columnType string) string {
	t := strings.ToLower(dataType)
	switch {
	case t == "number", t == "integer", strings.HasPrefix(t, "binary_"):
		// NUMBER columns with a positive scale are reclassified as
		// decimal by the caller, which sees DATA_SCALE.
		return "int"
	case t == "float":
		return "decimal"
	case t == "char" || t == "nchar":
		return "char"
	case t == "varchar2" || t == "nvarchar2" || t == "varchar":
		return "varchar"
	case strings.Contains(t, "clob") || t == "long":
		return "text"
	case t == "date" || strings.HasPrefix(t, "timestamp"):
		return "datetime"
	default:
		return t
	}
}

func (d *OracleDialect) SchemaName(input string) string {
	return DefaultSchemaName(input)
}
