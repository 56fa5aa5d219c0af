package dialect

import (
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// GenerateAssignments builds the "col = ?, col = ?" portion of an UPDATE,
// numbering placeholders from 0 so the key placeholder can follow.
func GenerateAssignments(cols []string, placeholderFunc func(int) string) string {
	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = c + " = " + placeholderFunc(i)
	}
	return strings.Join(assignments, ", ")
}

// ParseEnumList extracts the literal values from a MySQL-style enum or set
// type expression such as "enum('Y','N')" or "set('a','b')". Returns nil
// when the expression is not an enumeration.
func ParseEnumList(columnType string) []string {
	t := strings.ToLower(columnType)
	if !strings.HasPrefix(t, "enum(") && !strings.HasPrefix(t, "set(") {
		return nil
	}
	open := strings.Index(columnType, "(")
	end := strings.LastIndex(columnType, ")")
	if open < 0 || end <= open {
		return nil
	}
	body := columnType[open+1 : end]

	var values []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '\'':
			// Doubled quotes escape a literal quote inside a value.
			if inQuote && i+1 < len(body) && body[i+1] == '\'' {
				cur.WriteByte('\'')
				i++
				continue
			}
			if inQuote {
				values = append(values, cur.String())
				cur.Reset()
			}
			inQuote = !inQuote
		case inQuote:
			cur.WriteByte(ch)
		}
	}
	return values
}

// ParseTypeLength extracts the first parenthesized number from a raw type
// expression such as "varchar(100)" or "decimal(10,2)". Returns 0 when no
// length is declared.
func ParseTypeLength(columnType string) int {
	open := strings.Index(columnType, "(")
	if open < 0 {
		return 0
	}
	rest := columnType[open+1:]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		return 0
	}
	n := 0
	for _, r := range strings.TrimSpace(rest[:end]) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// ParseTypeScale extracts the second parenthesized number from a raw type
// expression such as "decimal(10,2)". Returns 0 when absent.
func ParseTypeScale(columnType string) int {
	open := strings.Index(columnType, "(")
	end := strings.Index(columnType, ")")
	if open < 0 || end <= open {
		return 0
	}
	parts := strings.Split(columnType[open+1:end], ",")
	if len(parts) < 2 {
		return 0
	}
	n := 0
	for _, r := range strings.TrimSpace(parts[1]) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// DefaultNormalizeType is a default implementation for type normalization (lowercase).
func DefaultNormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	if i := strings.Index(t, "("); i > 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// DefaultSchemaName is a default implementation for resolving the schema name (identity).
func DefaultSchemaName(input string) string {
	return input
}
