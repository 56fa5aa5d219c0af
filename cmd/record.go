package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"grimoire/internal/schema"
)

// loadRecord reads a posted record from a JSON file: an object of
// scalars and arrays of member ids. Numbers keep their literal form.
func loadRecord(path string) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}

	rec := make(schema.Record, len(raw))
	for k, v := range raw {
		rec[k] = toValue(v)
	}
	return rec, nil
}

func toValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []any:
		members := make([]string, 0, len(val))
		for _, m := range val {
			if s, ok := toValue(m).(string); ok && s != "" {
				members = append(members, s)
			}
		}
		return members
	default:
		return fmt.Sprint(val)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
