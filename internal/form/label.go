package form

import "strings"

// vocabulary expands the column-name shorthands that would otherwise
// produce awkward labels.
var vocabulary = map[string]string{
	"Abbr":  "Abbreviation",
	"Desc":  "Description",
	"Qty":   "Quantity",
	"Num":   "Number",
	"Max":   "Maximum",
	"Min":   "Minimum",
	"Avail": "Availability",
}

// Label derives a display label from a column name: underscores become
// spaces, words are title-cased, shorthands expand, and a trailing "Id"
// is dropped since the field's context makes it redundant.
func Label(column string) string {
	parts := strings.Split(column, "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		w := strings.ToUpper(p[:1]) + p[1:]
		if full, ok := vocabulary[w]; ok {
			w = full
		}
		words = append(words, w)
	}
	if n := len(words); n > 1 && words[n-1] == "Id" {
		words = words[:n-1]
	}
	return strings.Join(words, " ")
}
