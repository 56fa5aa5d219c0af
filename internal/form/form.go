// Package form turns a schema descriptor plus current values into a
// declarative, serializable description of a data-entry form. No HTML is
// generated here; the view layer renders the descriptor.
package form

import (
	"fmt"
	"strings"

	"grimoire/internal/schema"
)

// Kind is the input widget a field renders as.
type Kind string

const (
	KindHidden      Kind = "hidden"
	KindNumber      Kind = "number"
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multi-select"
)

// MissingLegendError reports that no legend column was declared and no
// column name in the value set carries the id suffix to infer one from.
type MissingLegendError struct {
	Table string
}

func (e *MissingLegendError) Error() string {
	return fmt.Sprintf("no legend column for table %q: declare one or provide a column ending in %q", e.Table, idSuffix)
}

const idSuffix = "_id"

// Field describes one input.
type Field struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Value    any             `json:"value"`
	Error    string          `json:"error,omitempty"`
	Label    string          `json:"label"`
	Kind     Kind            `json:"kind"`
	Required bool            `json:"required"`
	Options  []schema.Option `json:"options,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Classes  []string        `json:"classes,omitempty"`
}

// Form is the full descriptor: stateless, rebuilt per request.
type Form struct {
	Table  string  `json:"table"`
	Legend string  `json:"legend"`
	Fields []Field `json:"fields"`
}

// Config carries the per-entity declarations the builder itself cannot
// infer.
type Config struct {
	// LegendColumn explicitly names the column whose context titles the
	// form. Unset falls back to scanning the value set for the id
	// suffix.
	LegendColumn string
	// Housekeeping columns are never rendered.
	Housekeeping []string
	// Delimiter separates member ids in multi-valued value sources.
	// Defaults to ",".
	Delimiter string
}

// Build derives the form: one hidden field for the generated key first,
// then every remaining column in declared order, housekeeping excluded.
func Build(desc *schema.Descriptor, values schema.Record, errs map[string]string, cfg Config) (*Form, error) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if len(cfg.Housekeeping) == 0 {
		cfg.Housekeeping = []string{"import_id", "deleted"}
	}

	legend, err := resolveLegend(desc, values, cfg)
	if err != nil {
		return nil, err
	}

	f := &Form{Table: desc.Table, Legend: legend}

	if key := desc.Key(); key != nil {
		f.Fields = append(f.Fields, Field{
			ID:    key.Name,
			Name:  key.Name,
			Value: scalarValue(key, values),
			Label: Label(key.Name),
			Kind:  KindHidden,
		})
	}

	for _, col := range desc.Columns {
		if col.IsAutoGenerated || contains(cfg.Housekeeping, col.Name) {
			continue
		}
		f.Fields = append(f.Fields, buildField(col, values, errs, cfg))
	}
	return f, nil
}

func buildField(col *schema.Column, values schema.Record, errs map[string]string, cfg Config) Field {
	field := Field{
		ID:       col.Name,
		Name:     col.Name,
		Label:    Label(col.Name),
		Kind:     inferKind(col),
		Required: !col.IsNullable,
		Options:  col.Options.Pairs(),
		Error:    errs[col.Name],
	}

	if col.Multiple {
		field.Value = splitMembers(col, values, cfg.Delimiter)
		field.Name = col.Name + "[]"
	} else {
		field.Value = scalarValue(col, values)
	}

	attrs, classes := layout(col, field.Kind)
	field.Attrs = attrs
	field.Classes = classes
	return field
}

// inferKind is the deterministic data_type to widget mapping.
func inferKind(col *schema.Column) Kind {
	switch col.DataType {
	case schema.TypeInteger, schema.TypeDecimal:
		switch {
		case col.Options.Len() > 0 && col.Multiple:
			return KindMultiSelect
		case col.Options.Len() > 0:
			return KindSelect
		case col.IsAutoGenerated:
			return KindHidden
		default:
			return KindNumber
		}
	case schema.TypeFixedString, schema.TypeVarString:
		if col.MaxLength > 255 {
			return KindTextarea
		}
		return KindText
	case schema.TypeLongText:
		return KindTextarea
	case schema.TypeEnum, schema.TypeSet:
		return KindSelect
	default:
		return KindText
	}
}

// scalarValue resolves a single-valued field: posted/current value, or
// else the schema default for a new record.
func scalarValue(col *schema.Column, values schema.Record) string {
	if v, ok := values[col.Name]; ok && schema.ValueLen(v) > 0 {
		vals := schema.Values(v)
		return vals[0]
	}
	if col.HasDefault {
		return col.Default
	}
	return ""
}

// splitMembers resolves a multi-valued field: the source holds one
// delimiter-joined string of member ids under the field-specific key.
// Empty tokens are dropped.
func splitMembers(col *schema.Column, values schema.Record, delimiter string) []string {
	key := col.ValuesKey
	if key == "" {
		key = col.Name
	}
	raw, ok := values[key]
	if !ok {
		return []string{}
	}
	if set := schema.Values(raw); len(set) > 1 {
		return set
	}
	var joined string
	if set := schema.Values(raw); len(set) == 1 {
		joined = set[0]
	}
	members := []string{}
	for _, tok := range strings.Split(joined, delimiter) {
		if tok = strings.TrimSpace(tok); tok != "" {
			members = append(members, tok)
		}
	}
	return members
}

// resolveLegend picks the column whose context titles the form: the
// declared one, or else the first value-set column ending in the id
// suffix.
func resolveLegend(desc *schema.Descriptor, values schema.Record, cfg Config) (string, error) {
	if cfg.LegendColumn != "" {
		return Label(cfg.LegendColumn), nil
	}
	for _, col := range desc.Columns {
		if _, ok := values[col.Name]; ok && strings.HasSuffix(col.Name, idSuffix) {
			return Label(col.Name), nil
		}
	}
	return "", &MissingLegendError{Table: desc.Table}
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}
