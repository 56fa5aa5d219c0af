package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		[]any{d.SchemaName(schema)}
}

func (d *MSSQLDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT c.COLUMN_NAME, c.DATA_TYPE, c.DATA_TYPE, c.CHARACTER_MAXIMUM_LENGTH, c.NUMERIC_SCALE, c.IS_NULLABLE, c.COLUMN_DEFAULT,
    CASE WHEN COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') = 1 THEN 'auto_increment' ELSE '' END
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
ORDER BY c.ORDINAL_POSITION`,
		[]any{d.SchemaName(schema), table}
}

func (d *MSSQLDialect) ForeignKeysQuery(schema, table string) (string, []any) {
	return `SELECT KCU1.COLUMN_NAME, KCU2.TABLE_NAME, KCU2.COLUMN_NAME
FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1 ON RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2 ON RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME
WHERE KCU1.TABLE_SCHEMA = @p1 AND KCU1.TABLE_NAME = @p2`,
		[]any{d.SchemaName(schema), table}
}

func (d *MSSQLDialect) TableColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`,
		[]any{d.SchemaName(schema), table}
}

// EnumValues returns nil: SQL Server has no declared enumerations.
func (d *MSSQLDialect) EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error) {
	return nil, nil
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MSSQLDialect) UpdateQuery(table string, cols []string, key string) string {
	set := GenerateAssignments(cols, d.Placeholder)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", table, set, key, d.Placeholder(len(cols)))
}

func (d *MSSQLDialect) DeleteQuery(table, key string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, key, d.Placeholder(0))
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

// ReturningSuffix: go-mssqldb does not implement LastInsertId, so the
// generated key is fetched in the same batch.
func (d *MSSQLDialect) ReturningSuffix(key string) string {
	return "; SELECT SCOPE_IDENTITY()"
}

func (d *MSSQLDialect) NormalizeType(dataType, columnType string) string {
	switch t := strings.ToLower(dataType); t {
	case "tinyint", "smallint", "int", "bigint", "bit":
		return "int"
	case "decimal", "numeric", "money", "smallmoney", "float", "real":
		return "decimal"
	case "char", "nchar":
		return "char"
	case "varchar", "nvarchar":
		return "varchar"
	case "text", "ntext", "xml":
		return "text"
	case "date", "datetime", "datetime2", "smalldatetime", "time":
		return "datetime"
	default:
		return t
	}
}

func (d *MSSQLDialect) SchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
