package persist

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"grimoire/internal/dialect"
	"grimoire/internal/schema"
)

// Error is a write failure, carrying the failed statement for operator
// diagnosis. No automatic retry.
type Error struct {
	Statement string
	Err       error
}

func (e *Error) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("persist: %v", e.Err)
	}
	return fmt.Sprintf("persist: %v (statement: %s)", e.Err, e.Statement)
}

func (e *Error) Unwrap() error { return e.Err }

// Satellite describes one side relation synced alongside the primary
// row: delete-all-then-insert-all keyed by the owning record's id.
type Satellite struct {
	Table        string
	OwnerColumn  string
	MemberColumn string
	Members      []string
	// Extra columns written on every member row.
	Extra map[string]string
}

// Persister writes validated records.
type Persister struct {
	DB      *sql.DB
	Dialect dialect.Dialect
}

func New(db *sql.DB, d dialect.Dialect) *Persister {
	return &Persister{DB: db, Dialect: d}
}

// Save upserts the primary row and full-replaces every satellite set,
// all inside a single transaction, and returns the record id. An empty
// or zero key value inserts; anything else updates in place.
func (p *Persister) Save(desc *schema.Descriptor, rec schema.Record, satellites []Satellite) (int64, error) {
	key := desc.Key()
	if key == nil {
		return 0, fmt.Errorf("persist: table %s has no generated key column", desc.Table)
	}

	tx, err := p.DB.Begin()
	if err != nil {
		return 0, &Error{Err: fmt.Errorf("begin: %w", err)}
	}
	defer tx.Rollback()

	id, err := p.upsert(tx, desc, key, rec)
	if err != nil {
		return 0, err
	}

	for _, sat := range satellites {
		if err := p.replaceSet(tx, sat, id); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &Error{Err: fmt.Errorf("commit: %w", err)}
	}
	return id, nil
}

func (p *Persister) upsert(tx *sql.Tx, desc *schema.Descriptor, key *schema.Column, rec schema.Record) (int64, error) {
	cols, args := writeColumns(desc, rec)

	keyVal := scalar(rec[key.Name])
	if keyVal == "" || keyVal == "0" {
		query := p.Dialect.InsertQuery(desc.Table, cols)
		if suffix := p.Dialect.ReturningSuffix(key.Name); suffix != "" {
			query += suffix
			var id int64
			if err := tx.QueryRow(query, args...).Scan(&id); err != nil {
				return 0, &Error{Statement: query, Err: err}
			}
			return id, nil
		}
		res, err := tx.Exec(query, args...)
		if err != nil {
			return 0, &Error{Statement: query, Err: err}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, &Error{Statement: query, Err: err}
		}
		return id, nil
	}

	// Update returns affected-row counts, not the id; the id passes
	// through unchanged.
	query := p.Dialect.UpdateQuery(desc.Table, cols, key.Name)
	args = append(args, keyVal)
	if _, err := tx.Exec(query, args...); err != nil {
		return 0, &Error{Statement: query, Err: err}
	}
	id, err := strconv.ParseInt(keyVal, 10, 64)
	if err != nil {
		return 0, &Error{Err: fmt.Errorf("non-numeric key value %q: %w", keyVal, err)}
	}
	return id, nil
}

// replaceSet deletes all rows owned by id and reinserts one per member.
func (p *Persister) replaceSet(tx *sql.Tx, sat Satellite, id int64) error {
	del := p.Dialect.DeleteQuery(sat.Table, sat.OwnerColumn)
	if _, err := tx.Exec(del, id); err != nil {
		return &Error{Statement: del, Err: err}
	}

	cols := []string{sat.OwnerColumn, sat.MemberColumn}
	var extraKeys []string
	for k := range sat.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	cols = append(cols, extraKeys...)

	ins := p.Dialect.InsertQuery(sat.Table, cols)
	for _, member := range dedupe(sat.Members) {
		args := []any{id, member}
		for _, k := range extraKeys {
			args = append(args, sat.Extra[k])
		}
		if _, err := tx.Exec(ins, args...); err != nil {
			return &Error{Statement: ins, Err: err}
		}
	}
	return nil
}

// writeColumns picks the columns and values to write. The generated key
// never appears; a nullable column with an empty value is omitted so the
// database applies its own default or NULL; absent columns are left
// untouched.
func writeColumns(desc *schema.Descriptor, rec schema.Record) ([]string, []any) {
	var cols []string
	var args []any
	for _, col := range desc.Columns {
		if col.IsAutoGenerated {
			continue
		}
		v, present := rec[col.Name]
		if !present {
			continue
		}
		if schema.ValueLen(v) == 0 && col.IsNullable {
			continue
		}
		cols = append(cols, col.Name)
		if col.DataType == schema.TypeSet {
			args = append(args, strings.Join(schema.Values(v), ","))
		} else {
			args = append(args, scalar(v))
		}
	}
	return cols, args
}

func scalar(v any) string {
	vals := schema.Values(v)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func dedupe(members []string) []string {
	seen := make(map[string]bool, len(members))
	out := members[:0:0]
	for _, m := range members {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
