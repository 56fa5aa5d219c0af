package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`,
		[]any{d.SchemaName(schema)}
}

func (d *PostgresDialect) ColumnsQuery(schema, table string) (string, []any) {
	// udt_name rides in the column_type slot so enum columns can be
	// resolved against pg_enum later.
	return `SELECT c.column_name, c.data_type, c.udt_name, c.character_maximum_length, c.numeric_scale, c.is_nullable, c.column_default,
    CASE WHEN c.is_identity = 'YES' OR c.column_default LIKE 'nextval(%' THEN 'auto_increment' ELSE '' END
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`,
		[]any{d.SchemaName(schema), table}
}

func (d *PostgresDialect) ForeignKeysQuery(schema, table string) (string, []any) {
	return `SELECT kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name
JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
WHERE kcu.table_schema = $1 AND kcu.table_name = $2 AND tc.constraint_type = 'FOREIGN KEY'`,
		[]any{d.SchemaName(schema), table}
}

func (d *PostgresDialect) TableColumnsQuery(schema, table string) (string, []any) {
	return `SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`,
		[]any{d.SchemaName(schema), table}
}

// EnumValues looks the declared labels up in pg_enum by udt name, in
// declared sort order.
func (d *PostgresDialect) EnumValues(db *sql.DB, schema, table, column, columnType string) ([]string, error) {
	rows, err := db.Query(`SELECT e.enumlabel FROM pg_enum e JOIN pg_type t ON t.oid = e.enumtypid WHERE t.typname = $1 ORDER BY e.enumsortorder`, columnType)
	if err != nil {
		return nil, fmt.Errorf("failed to query enum values for %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan enum value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) UpdateQuery(table string, cols []string, key string) string {
	set := GenerateAssignments(cols, d.Placeholder)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", table, set, key, d.Placeholder(len(cols)))
}

func (d *PostgresDialect) DeleteQuery(table, key string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, key, d.Placeholder(0))
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) ReturningSuffix(key string) string {
	return fmt.Sprintf(" RETURNING %s", key)
}

func (d *PostgresDialect) NormalizeType(dataType, columnType string) string {
	switch t := strings.ToLower(dataType); t {
	case "smallint", "integer", "bigint", "int2", "int4", "int8", "boolean":
		return "int"
	case "numeric", "decimal", "real", "double precision", "money":
		return "decimal"
	case "character", "bpchar":
		return "char"
	case "character varying", "varchar":
		return "varchar"
	case "text":
		return "text"
	case "user-defined":
		return "enum"
	case "date", "time without time zone", "time with time zone",
		"timestamp without time zone", "timestamp with time zone":
		return "datetime"
	default:
		return t
	}
}

func (d *PostgresDialect) SchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
