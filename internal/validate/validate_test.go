package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimoire/internal/schema"
)

// booksDescriptor mirrors a typical sourcebook table: generated key,
// two required length-limited strings, a constrained flag, and the two
// housekeeping columns.
func booksDescriptor() *schema.Descriptor {
	included := schema.NewOptions()
	included.Add("Y", "Y")
	included.Add("N", "N")

	return &schema.Descriptor{
		Table: "books",
		Columns: []*schema.Column{
			{Name: "book_id", DataType: schema.TypeInteger, IsAutoGenerated: true},
			{Name: "book", DataType: schema.TypeVarString, MaxLength: 100},
			{Name: "abbreviation", DataType: schema.TypeVarString, MaxLength: 10},
			{Name: "included", DataType: schema.TypeEnum, Options: included},
			{Name: "import_id", DataType: schema.TypeVarString, MaxLength: 20, IsNullable: true},
			{Name: "deleted", DataType: schema.TypeInteger},
		},
	}
}

func TestValidateCreateValid(t *testing.T) {
	v := New(booksDescriptor())
	ok, errs, err := v.Validate(schema.Record{
		"book":         "Street Magic",
		"abbreviation": "SM",
		"included":     "Y",
	}, ActionCreate)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateCreateMissingAndInvalid(t *testing.T) {
	v := New(booksDescriptor())
	ok, errs, err := v.Validate(schema.Record{
		"book":         "",
		"abbreviation": "WAY TOO LONG FOR TEN",
		"included":     "maybe",
	}, ActionCreate)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Errors{
		"book":         MsgRequired,
		"abbreviation": MsgTooLong,
		"included":     MsgInvalid,
	}, errs)
}

func TestValidateCheckOrder(t *testing.T) {
	// An empty value on a required, constrained column reports the
	// required message, not the membership one.
	v := New(booksDescriptor())
	_, errs, err := v.Validate(schema.Record{
		"book":         "Core Rules",
		"abbreviation": "CR",
		"included":     "",
	}, ActionCreate)

	require.NoError(t, err)
	assert.Equal(t, Errors{"included": MsgRequired}, errs)
}

func TestValidateZeroStringIsPresent(t *testing.T) {
	desc := &schema.Descriptor{
		Table: "qualities",
		Columns: []*schema.Column{
			{Name: "karma_cost", DataType: schema.TypeInteger},
		},
	}
	ok, errs, err := New(desc).Validate(schema.Record{"karma_cost": "0"}, ActionCreate)

	require.NoError(t, err)
	assert.True(t, ok, `"0" is a value, not an omission`)
	assert.Empty(t, errs)
}

func TestValidateHousekeepingSkipped(t *testing.T) {
	// deleted is NOT NULL and absent from the post, yet raises nothing.
	v := New(booksDescriptor())
	ok, errs, err := v.Validate(schema.Record{
		"book":         "Core Rules",
		"abbreviation": "CR",
		"included":     "Y",
	}, ActionCreate)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, errs, "deleted")
	assert.NotContains(t, errs, "import_id")
}

func TestValidateKeySkippedOnCreateOnly(t *testing.T) {
	v := New(booksDescriptor())
	v.KnownIDs = map[string]bool{"7": true}

	rec := schema.Record{
		"book":         "Core Rules",
		"abbreviation": "CR",
		"included":     "Y",
	}

	ok, errs, err := v.Validate(rec, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok, "missing key is fine on create")
	_ = errs

	ok, errs, err = v.Validate(rec, ActionUpdate)
	require.NoError(t, err)
	assert.False(t, ok, "update without a key fails the required check")
	assert.Equal(t, MsgRequired, errs["book_id"])
}

func TestValidateExistence(t *testing.T) {
	v := New(booksDescriptor())
	v.KnownIDs = map[string]bool{"7": true}

	rec := schema.Record{
		"book_id":      "99",
		"book":         "Core Rules",
		"abbreviation": "CR",
		"included":     "Y",
	}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		t.Run(action.String(), func(t *testing.T) {
			ok, errs, err := v.Validate(rec, action)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, MsgNoRecord, errs["book_id"])
		})
	}

	rec["book_id"] = "7"
	ok, errs, err := v.Validate(rec, ActionUpdate)
	require.NoError(t, err)
	assert.True(t, ok, "known id passes: %v", errs)
}

func TestValidateSetMembership(t *testing.T) {
	categories := schema.NewOptions()
	categories.Add("combat", "Combat")
	categories.Add("detection", "Detection")
	categories.Add("illusion", "Illusion")

	desc := &schema.Descriptor{
		Table: "spells",
		Columns: []*schema.Column{
			{Name: "category", DataType: schema.TypeSet, Options: categories, IsNullable: true},
		},
	}

	ok, _, err := New(desc).Validate(schema.Record{"category": []string{"combat", "illusion"}}, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, errs, err := New(desc).Validate(schema.Record{"category": []string{"combat", "necromancy"}}, ActionCreate)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, MsgInvalid, errs["category"])
}

func TestValidateMissingTable(t *testing.T) {
	_, _, err := New(&schema.Descriptor{}).Validate(schema.Record{}, ActionCreate)
	assert.ErrorIs(t, err, ErrMissingTable)

	_, _, err = (&Validator{}).Validate(schema.Record{}, ActionCreate)
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestRuleRequiredWith(t *testing.T) {
	desc := &schema.Descriptor{
		Table: "qualities",
		Columns: []*schema.Column{
			{Name: "levels", DataType: schema.TypeVarString, IsNullable: true},
			{Name: "karma_per_level", DataType: schema.TypeInteger, IsNullable: true},
		},
	}
	v := New(desc)
	v.Rules = []Rule{RequiredWith("levels", "karma_per_level")}

	ok, errs, err := v.Validate(schema.Record{"levels": "Y"}, ActionCreate)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, MsgRequired, errs["karma_per_level"])

	ok, _, err = v.Validate(schema.Record{"levels": "Y", "karma_per_level": "2"}, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _, err = v.Validate(schema.Record{}, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok, "rule is inert while the flag is empty")
}

func TestRuleAllOrNone(t *testing.T) {
	desc := &schema.Descriptor{
		Table: "programs",
		Columns: []*schema.Column{
			{Name: "min_rating", DataType: schema.TypeInteger, IsNullable: true},
			{Name: "max_rating", DataType: schema.TypeInteger, IsNullable: true},
		},
	}
	v := New(desc)
	v.Rules = []Rule{AllOrNone("min_rating", "max_rating")}

	ok, errs, err := v.Validate(schema.Record{"min_rating": "1"}, ActionCreate)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, MsgRequired, errs["max_rating"])

	ok, _, err = v.Validate(schema.Record{"min_rating": "1", "max_rating": "6"}, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _, err = v.Validate(schema.Record{}, ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"create": ActionCreate,
		"read":   ActionRead,
		"update": ActionUpdate,
		"delete": ActionDelete,
	} {
		got, err := ParseAction(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAction("upsert")
	assert.Error(t, err)
}
