package form

import (
	"strconv"

	"grimoire/internal/schema"
)

// widthBuckets is the fixed set of width classes a text input may take.
var widthBuckets = []int{5, 10, 20, 40, 60}

// layout computes the HTML-safe attributes and display classes for a
// field: numeric step and minimum, text width bucket, textarea height
// bucket.
func layout(col *schema.Column, kind Kind) (map[string]string, []string) {
	attrs := make(map[string]string)
	var classes []string

	switch kind {
	case KindNumber:
		attrs["step"] = step(col.NumericScale)
		if col.Unsigned {
			attrs["min"] = "0"
		}
	case KindText:
		if col.MaxLength > 0 {
			attrs["maxlength"] = strconv.Itoa(col.MaxLength)
		}
		classes = append(classes, "width-"+strconv.Itoa(widthBucket(col.MaxLength)))
	case KindTextarea:
		classes = append(classes, "width-"+strconv.Itoa(widthBuckets[len(widthBuckets)-1]))
		classes = append(classes, "height-"+heightBucket(col.MaxLength))
	}

	if len(attrs) == 0 {
		attrs = nil
	}
	return attrs, classes
}

// step derives the numeric input step from the column's decimal scale:
// whole numbers step by 1, otherwise by the matching precision (scale 2
// gives 0.01).
func step(scale int) string {
	if scale <= 0 {
		return "1"
	}
	s := "0."
	for i := 1; i < scale; i++ {
		s += "0"
	}
	return s + "1"
}

// widthBucket scales max_length into the nearest fixed width class,
// clamped to the bucket range.
func widthBucket(maxLength int) int {
	if maxLength <= 0 {
		return widthBuckets[len(widthBuckets)-1]
	}
	target := maxLength / 2
	best := widthBuckets[0]
	bestDist := distance(target, best)
	for _, b := range widthBuckets[1:] {
		if d := distance(target, b); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// heightBucket selects a textarea height by declared length thresholds.
func heightBucket(maxLength int) string {
	switch {
	case maxLength > 0 && maxLength <= 512:
		return "small"
	case maxLength > 0 && maxLength <= 4096:
		return "medium"
	default:
		return "large"
	}
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
