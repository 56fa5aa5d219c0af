package validate

import (
	"errors"

	"grimoire/internal/schema"
)

// Field messages shown next to the offending input.
const (
	MsgRequired = "This field is required."
	MsgTooLong  = "Your entry is too long."
	MsgInvalid  = "Your response was invalid."
	MsgNoRecord = "Requested record does not exist."
)

// ErrMissingTable signals a structural misuse: validating against a
// descriptor with no table name. Ordinary invalid input never surfaces
// as an error.
var ErrMissingTable = errors.New("validate: schema descriptor has no table name")

// Errors maps column name to a message. Rebuilt fresh on every call.
type Errors map[string]string

// Rule is an entity-specific extension hook. It inspects the posted
// record, may add messages to errs, and reports whether its check
// passed. Overall validity is the AND of the generic result and every
// rule.
type Rule func(posted schema.Record, errs Errors) bool

// DefaultHousekeeping names the columns permanently excluded from the
// generic checks: the import identity and the soft-delete flag.
func DefaultHousekeeping() []string {
	return []string{"import_id", "deleted"}
}

// Validator checks posted field values against a schema descriptor.
type Validator struct {
	Schema       *schema.Descriptor
	Housekeeping []string
	Rules        []Rule

	// KnownIDs is the previously fetched set of valid record
	// identifiers, consulted on read, update and delete.
	KnownIDs map[string]bool
}

func New(desc *schema.Descriptor) *Validator {
	return &Validator{Schema: desc, Housekeeping: DefaultHousekeeping()}
}

// Validate runs the generic checks over every important column, then the
// entity rules. Per field the first failing check wins, in the fixed
// order required > length > membership.
func (v *Validator) Validate(posted schema.Record, action Action) (bool, Errors, error) {
	if v.Schema == nil || v.Schema.Table == "" {
		return false, nil, ErrMissingTable
	}

	errs := make(Errors)

	if action != ActionCreate {
		v.checkExists(posted, errs)
	}

	for _, col := range v.Schema.Columns {
		if !v.important(col, action) {
			continue
		}
		if _, taken := errs[col.Name]; taken {
			continue
		}

		val := posted[col.Name]
		n := schema.ValueLen(val)
		switch {
		case !col.IsNullable && n == 0:
			errs[col.Name] = MsgRequired
		case col.DataType.Stringlike() && col.MaxLength > 0 && n > col.MaxLength:
			errs[col.Name] = MsgTooLong
		case col.Options.Len() > 0 && n > 0:
			for _, member := range schema.Values(val) {
				if !col.Options.Has(member) {
					errs[col.Name] = MsgInvalid
					break
				}
			}
		}
	}

	ok := len(errs) == 0
	for _, rule := range v.Rules {
		if !rule(posted, errs) {
			ok = false
		}
	}
	return ok, errs, nil
}

// checkExists requires any asserted record identifier to be a member of
// the known id set.
func (v *Validator) checkExists(posted schema.Record, errs Errors) {
	key := v.Schema.Key()
	if key == nil {
		return
	}
	for _, id := range schema.Values(posted[key.Name]) {
		if !v.KnownIDs[id] {
			errs[key.Name] = MsgNoRecord
			return
		}
	}
}

// important reports whether the column is subject to the generic checks:
// housekeeping columns never are, and the surrogate key is skipped on
// create (it has no value yet).
func (v *Validator) important(col *schema.Column, action Action) bool {
	for _, h := range v.Housekeeping {
		if col.Name == h {
			return false
		}
	}
	if col.IsAutoGenerated && action == ActionCreate {
		return false
	}
	return true
}
