package schema

import (
	"encoding/json"
	"sort"
)

// DataType is the semantic type tag driving validation and form layout.
type DataType string

const (
	TypeInteger     DataType = "integer"
	TypeDecimal     DataType = "decimal"
	TypeFixedString DataType = "fixed-string"
	TypeVarString   DataType = "variable-string"
	TypeLongText    DataType = "long-text"
	TypeEnum        DataType = "enumeration"
	TypeSet         DataType = "set"
)

// Numeric reports whether the type belongs to the number family.
func (t DataType) Numeric() bool {
	return t == TypeInteger || t == TypeDecimal
}

// Stringlike reports whether the type carries a length-checked text value.
func (t DataType) Stringlike() bool {
	return t == TypeFixedString || t == TypeVarString || t == TypeLongText
}

// Descriptor is the normalized metadata for one table, columns in
// declared order. It is recomputed on every Describe call; callers may
// cache it for the duration of a request.
type Descriptor struct {
	Table   string    `json:"table"`
	Columns []*Column `json:"columns"`
}

// Column returns the descriptor for the named column, or nil.
func (d *Descriptor) Column(name string) *Column {
	for _, c := range d.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Key returns the auto-generated surrogate key column, or nil when the
// table has none.
func (d *Descriptor) Key() *Column {
	for _, c := range d.Columns {
		if c.IsAutoGenerated {
			return c
		}
	}
	return nil
}

// Column describes a single column.
type Column struct {
	Name            string      `json:"name"`
	DataType        DataType    `json:"data_type"`
	RawType         string      `json:"raw_type,omitempty"`
	IsNullable      bool        `json:"is_nullable"`
	MaxLength       int         `json:"max_length,omitempty"`
	NumericScale    int         `json:"numeric_scale,omitempty"`
	Unsigned        bool        `json:"unsigned,omitempty"`
	Default         string      `json:"default,omitempty"`
	HasDefault      bool        `json:"-"`
	IsAutoGenerated bool        `json:"is_auto_generated"`
	Options         *Options    `json:"options,omitempty"`
	Ref             *ForeignKey `json:"foreign_key,omitempty"`

	// Extension attributes attached by entity-specific callers before
	// form building: where posted values live for multi-valued fields,
	// and whether the field takes a set of ids rather than one.
	ValuesKey string `json:"values_key,omitempty"`
	Multiple  bool   `json:"multiple,omitempty"`
}

// ForeignKey names the referenced table, its id column, and the column
// used as the human-readable label.
type ForeignKey struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Label  string `json:"label"`
}

// Option is one valid value and its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options is an ordered value-to-label mapping.
type Options struct {
	pairs []Option
	index map[string]int
}

func NewOptions() *Options {
	return &Options{index: make(map[string]int)}
}

// Add appends a pair, overwriting the label when the value repeats.
func (o *Options) Add(value, label string) {
	if i, ok := o.index[value]; ok {
		o.pairs[i].Label = label
		return
	}
	o.index[value] = len(o.pairs)
	o.pairs = append(o.pairs, Option{Value: value, Label: label})
}

// Has reports membership of a value. Nil-safe.
func (o *Options) Has(value string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[value]
	return ok
}

// Len returns the pair count. Nil-safe.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.pairs)
}

// Pairs returns the pairs in order. Nil-safe.
func (o *Options) Pairs() []Option {
	if o == nil {
		return nil
	}
	return o.pairs
}

// SortByLabel reorders the pairs by label ascending.
func (o *Options) SortByLabel() {
	sort.SliceStable(o.pairs, func(i, j int) bool {
		return o.pairs[i].Label < o.pairs[j].Label
	})
	for i, p := range o.pairs {
		o.index[p.Value] = i
	}
}

func (o *Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.pairs)
}

func (o *Options) UnmarshalJSON(data []byte) error {
	var pairs []Option
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	*o = *NewOptions()
	for _, p := range pairs {
		o.Add(p.Value, p.Label)
	}
	return nil
}

// Record is one flat row of posted or stored data: column name to a
// scalar string or a set of member ids.
type Record map[string]any

// Values normalizes a record entry to a slice: a scalar becomes a
// singleton, a set stays as-is, nil and empty strings become empty.
func Values(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ValueLen is the emptiness measure for posted data: scalar length, or
// element count for sets. The string "0" has length 1 and is not empty.
func ValueLen(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		return len(val)
	case []string:
		return len(val)
	case []any:
		return len(val)
	default:
		return 0
	}
}
