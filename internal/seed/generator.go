// Package seed generates plausible sample records from a schema
// descriptor, for populating development databases.
package seed

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"

	"grimoire/internal/schema"
)

// Record generates one posted record for desc. Option-backed fields pick
// a declared value; free fields get faked data within the column's
// declared length and scale. Generated key columns are left out so the
// persister inserts a fresh row.
func Record(desc *schema.Descriptor) schema.Record {
	rec := make(schema.Record)
	for _, col := range desc.Columns {
		if col.IsAutoGenerated {
			continue
		}
		rec[col.Name] = Value(col)
	}
	return rec
}

// Value generates one value for a single column.
func Value(col *schema.Column) any {
	if col.Options.Len() > 0 {
		pairs := col.Options.Pairs()
		if col.DataType == schema.TypeSet {
			return pickSet(pairs)
		}
		return pairs[gofakeit.Number(0, len(pairs)-1)].Value
	}

	switch col.DataType {
	case schema.TypeInteger:
		return strconv.Itoa(gofakeit.Number(1, intCeiling(col.MaxLength)))
	case schema.TypeDecimal:
		scale := col.NumericScale
		if scale <= 0 {
			scale = 2
		}
		return fmt.Sprintf("%.*f", scale, gofakeit.Float64Range(0, 1000))
	case schema.TypeLongText:
		return gofakeit.Paragraph(1, 3, 8, " ")
	default:
		return truncate(text(col.MaxLength), col.MaxLength)
	}
}

func text(maxLength int) string {
	if maxLength > 0 && maxLength < 20 {
		return gofakeit.Word()
	}
	return gofakeit.Sentence(4)
}

// pickSet selects one or two distinct members of a declared set.
func pickSet(pairs []schema.Option) []string {
	first := gofakeit.Number(0, len(pairs)-1)
	members := []string{pairs[first].Value}
	if len(pairs) > 1 && gofakeit.Bool() {
		second := gofakeit.Number(0, len(pairs)-1)
		if second != first {
			members = append(members, pairs[second].Value)
		}
	}
	return members
}

// intCeiling caps generated integers so they fit the column's declared
// digit count.
func intCeiling(length int) int {
	if length <= 0 || length >= 10 {
		return 50000
	}
	limit := 1
	for i := 0; i < length; i++ {
		limit *= 10
	}
	if limit-1 < 1 {
		return 9
	}
	return limit - 1
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
