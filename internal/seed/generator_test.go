package seed

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimoire/internal/schema"
)

func TestRecordSkipsGeneratedKey(t *testing.T) {
	gofakeit.Seed(11)

	desc := &schema.Descriptor{
		Table: "books",
		Columns: []*schema.Column{
			{Name: "book_id", DataType: schema.TypeInteger, IsAutoGenerated: true},
			{Name: "book", DataType: schema.TypeVarString, MaxLength: 100},
			{Name: "page_count", DataType: schema.TypeInteger, MaxLength: 4},
		},
	}

	rec := Record(desc)
	assert.NotContains(t, rec, "book_id")
	assert.Contains(t, rec, "book")
	assert.Contains(t, rec, "page_count")
}

func TestValueRespectsOptions(t *testing.T) {
	gofakeit.Seed(11)

	opts := schema.NewOptions()
	opts.Add("Y", "Y")
	opts.Add("N", "N")
	col := &schema.Column{Name: "included", DataType: schema.TypeEnum, Options: opts}

	for i := 0; i < 50; i++ {
		v, ok := Value(col).(string)
		require.True(t, ok)
		assert.True(t, opts.Has(v), "generated %q outside the declared values", v)
	}
}

func TestValueSetMembers(t *testing.T) {
	gofakeit.Seed(11)

	opts := schema.NewOptions()
	opts.Add("combat", "Combat")
	opts.Add("detection", "Detection")
	opts.Add("illusion", "Illusion")
	col := &schema.Column{Name: "category", DataType: schema.TypeSet, Options: opts}

	for i := 0; i < 50; i++ {
		members, ok := Value(col).([]string)
		require.True(t, ok)
		require.NotEmpty(t, members)
		assert.LessOrEqual(t, len(members), 2)
		for _, m := range members {
			assert.True(t, opts.Has(m))
		}
	}
}

func TestValueRespectsLength(t *testing.T) {
	gofakeit.Seed(11)

	short := &schema.Column{Name: "abbreviation", DataType: schema.TypeVarString, MaxLength: 10}
	for i := 0; i < 50; i++ {
		v := Value(short).(string)
		assert.LessOrEqual(t, len([]rune(v)), 10)
		assert.NotEmpty(t, v)
	}

	digits := &schema.Column{Name: "page", DataType: schema.TypeInteger, MaxLength: 3}
	for i := 0; i < 50; i++ {
		n, err := strconv.Atoi(Value(digits).(string))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 999)
	}
}

func TestValueDecimalScale(t *testing.T) {
	gofakeit.Seed(11)

	col := &schema.Column{Name: "cost", DataType: schema.TypeDecimal, NumericScale: 2}
	v := Value(col).(string)
	_, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err)
	assert.Regexp(t, `^\d+\.\d{2}$`, v)
}
