package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grimoire/internal/dialect"
)

// ErrNoSuchTable marks an UnavailableError caused by an unknown table
// rather than a failed catalog query.
var ErrNoSuchTable = errors.New("table does not exist")

// Introspector reads catalog metadata and produces Descriptors. Read
// only; safe to call repeatedly.
type Introspector struct {
	DB      *sql.DB
	Dialect dialect.Dialect
	Schema  string

	// Labels declares the label column per referenced table, forwarded
	// to the option resolver.
	Labels map[string]string
}

func NewIntrospector(db *sql.DB, d dialect.Dialect, schemaName string) *Introspector {
	return &Introspector{DB: db, Dialect: d, Schema: schemaName}
}

// Describe queries the catalog for all columns of table, in declared
// order, resolving options for enumerated and foreign-key columns along
// the way. Downstream form layout depends on the ordering.
func (in *Introspector) Describe(table string) (*Descriptor, error) {
	if table == "" {
		return nil, &UnavailableError{Table: table, Err: errors.New("empty table name")}
	}

	target := in.Dialect.SchemaName(in.Schema)
	query, args := in.Dialect.ColumnsQuery(target, table)
	rows, err := in.DB.Query(query, args...)
	if err != nil {
		return nil, &UnavailableError{Table: table, Err: fmt.Errorf("failed to query columns: %w", err)}
	}
	defer rows.Close()

	desc := &Descriptor{Table: table}
	for rows.Next() {
		var name, dataType string
		var columnType, isNull, dflt, extra sql.NullString
		var maxLen, numScale sql.NullInt64

		if err := rows.Scan(&name, &dataType, &columnType, &maxLen, &numScale, &isNull, &dflt, &extra); err != nil {
			return nil, &UnavailableError{Table: table, Err: fmt.Errorf("failed to scan column: %w", err)}
		}

		family := in.Dialect.NormalizeType(dataType, columnType.String)
		scale := int(numScale.Int64)
		if !numScale.Valid {
			scale = dialect.ParseTypeScale(columnType.String)
		}
		// NUMBER-style columns with a positive scale carry decimals.
		if family == "int" && scale > 0 {
			family = "decimal"
		}

		length := int(maxLen.Int64)
		if !maxLen.Valid {
			length = dialect.ParseTypeLength(columnType.String)
		}

		extraLower := strings.ToLower(extra.String)
		autoGen := strings.Contains(extraLower, "auto_increment") ||
			strings.Contains(extraLower, "identity") ||
			strings.Contains(extraLower, "nextval")

		desc.Columns = append(desc.Columns, &Column{
			Name:            name,
			DataType:        typeForFamily(family),
			RawType:         columnType.String,
			IsNullable:      isNull.String == "YES",
			MaxLength:       length,
			NumericScale:    scale,
			Unsigned:        strings.Contains(strings.ToLower(columnType.String), "unsigned"),
			Default:         strings.Trim(dflt.String, "'"),
			HasDefault:      dflt.Valid,
			IsAutoGenerated: autoGen,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &UnavailableError{Table: table, Err: fmt.Errorf("error iterating columns: %w", err)}
	}
	if len(desc.Columns) == 0 {
		return nil, &UnavailableError{Table: table, Err: ErrNoSuchTable}
	}

	resolver := &OptionResolver{DB: in.DB, Dialect: in.Dialect, Schema: in.Schema, Labels: in.Labels}
	for _, col := range desc.Columns {
		switch {
		case col.DataType == TypeEnum || col.DataType == TypeSet:
			opts, err := resolver.EnumOptions(table, col)
			if err != nil {
				return nil, err
			}
			col.Options = opts
		case col.DataType == TypeInteger && !col.IsAutoGenerated:
			opts, ref, err := resolver.ForeignKeyOptions(table, col.Name)
			if err != nil {
				return nil, err
			}
			if ref != nil {
				col.Options = opts
				col.Ref = ref
			}
		}
	}

	return desc, nil
}

// Tables lists the base tables of the connected schema.
func (in *Introspector) Tables() ([]string, error) {
	query, args := in.Dialect.TablesQuery(in.Dialect.SchemaName(in.Schema))
	rows, err := in.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Ids fetches the full set of primary-key values for a table, used for
// record-existence checks on read, update, and delete.
func (in *Introspector) Ids(table, key string) (map[string]bool, error) {
	rows, err := in.DB.Query(fmt.Sprintf("SELECT %s FROM %s", key, table))
	if err != nil {
		return nil, &UnavailableError{Table: table, Err: err}
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id sql.NullString
		if err := rows.Scan(&id); err != nil {
			return nil, &UnavailableError{Table: table, Err: err}
		}
		ids[id.String] = true
	}
	return ids, rows.Err()
}

func typeForFamily(family string) DataType {
	switch family {
	case "int":
		return TypeInteger
	case "decimal":
		return TypeDecimal
	case "char":
		return TypeFixedString
	case "varchar", "datetime":
		return TypeVarString
	case "text":
		return TypeLongText
	case "enum":
		return TypeEnum
	case "set":
		return TypeSet
	default:
		return TypeVarString
	}
}
