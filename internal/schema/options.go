package schema

import (
	"database/sql"
	"fmt"

	"grimoire/internal/dialect"
)

// OptionResolver resolves the valid (value, label) pairs a constrained
// column may take, from either a declared enumeration or a foreign-key
// lookup against the referenced table.
type OptionResolver struct {
	DB      *sql.DB
	Dialect dialect.Dialect
	Schema  string

	// Labels maps a referenced table to its declared label column.
	// Unmapped tables fall back to "the one column left after removing
	// the id column", taking the first in declared order when several
	// remain.
	Labels map[string]string
}

// EnumOptions reads the column's declared value list. The literal is
// both key and display text.
func (r *OptionResolver) EnumOptions(table string, col *Column) (*Options, error) {
	values, err := r.Dialect.EnumValues(r.DB, r.schema(), table, col.Name, col.RawType)
	if err != nil {
		return nil, &OptionError{Table: table, Column: col.Name, Err: err}
	}
	opts := NewOptions()
	for _, v := range values {
		opts.Add(v, v)
	}
	return opts, nil
}

// ForeignKeyOptions looks up whether column carries a foreign-key
// constraint; if so it returns all (id, label) pairs of the referenced
// table sorted by label ascending, along with the resolved target. With
// no constraint it returns empty options and a nil target.
func (r *OptionResolver) ForeignKeyOptions(table, column string) (*Options, *ForeignKey, error) {
	ref, err := r.foreignKeyTarget(table, column)
	if err != nil {
		return nil, nil, err
	}
	if ref == nil {
		return NewOptions(), nil, nil
	}

	label, err := r.labelColumn(table, column, ref)
	if err != nil {
		return nil, nil, err
	}
	ref.Label = label

	query := fmt.Sprintf("SELECT %s, %s FROM %s", ref.Column, label, ref.Table)
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, nil, &OptionError{Table: table, Column: column, Err: err}
	}
	defer rows.Close()

	opts := NewOptions()
	for rows.Next() {
		var id, lbl sql.NullString
		if err := rows.Scan(&id, &lbl); err != nil {
			return nil, nil, &OptionError{Table: table, Column: column, Err: err}
		}
		opts.Add(id.String, lbl.String)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &OptionError{Table: table, Column: column, Err: err}
	}
	opts.SortByLabel()
	return opts, ref, nil
}

func (r *OptionResolver) foreignKeyTarget(table, column string) (*ForeignKey, error) {
	query, args := r.Dialect.ForeignKeysQuery(r.schema(), table)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, &OptionError{Table: table, Column: column, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var col, refTable, refCol sql.NullString
		if err := rows.Scan(&col, &refTable, &refCol); err != nil {
			return nil, &OptionError{Table: table, Column: column, Err: err}
		}
		if col.String == column && refTable.Valid {
			return &ForeignKey{Table: refTable.String, Column: refCol.String}, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &OptionError{Table: table, Column: column, Err: err}
	}
	return nil, nil
}

func (r *OptionResolver) labelColumn(table, column string, ref *ForeignKey) (string, error) {
	if declared, ok := r.Labels[ref.Table]; ok && declared != "" {
		return declared, nil
	}

	query, args := r.Dialect.TableColumnsQuery(r.schema(), ref.Table)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return "", &OptionError{Table: table, Column: column, Err: err}
	}
	defer rows.Close()

	var remaining []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", &OptionError{Table: table, Column: column, Err: err}
		}
		if name != ref.Column {
			remaining = append(remaining, name)
		}
	}
	if err := rows.Err(); err != nil {
		return "", &OptionError{Table: table, Column: column, Err: err}
	}
	if len(remaining) == 0 {
		return "", &OptionError{Table: table, Column: column,
			Err: fmt.Errorf("referenced table %s has no label column", ref.Table)}
	}
	return remaining[0], nil
}

func (r *OptionResolver) schema() string {
	return r.Dialect.SchemaName(r.Schema)
}
