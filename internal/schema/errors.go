package schema

import "fmt"

// UnavailableError reports that a table's metadata could not be read:
// the table does not exist or the catalog query failed.
type UnavailableError struct {
	Table string
	Err   error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("schema unavailable for table %q", e.Table)
	}
	return fmt.Sprintf("schema unavailable for table %q: %v", e.Table, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// OptionError reports a failed enum or foreign-key option resolution.
// The underlying metadata error is never masked.
type OptionError struct {
	Table  string
	Column string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("cannot resolve options for %s.%s: %v", e.Table, e.Column, e.Err)
}

func (e *OptionError) Unwrap() error { return e.Err }
