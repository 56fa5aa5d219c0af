package validate

import "grimoire/internal/schema"

// RequiredWith builds a rule making dependent required whenever flag
// carries a value (e.g. a per-level cost once the levels flag is set).
func RequiredWith(flag, dependent string) Rule {
	return func(posted schema.Record, errs Errors) bool {
		if schema.ValueLen(posted[flag]) == 0 || schema.ValueLen(posted[dependent]) > 0 {
			return true
		}
		if _, taken := errs[dependent]; !taken {
			errs[dependent] = MsgRequired
		}
		return false
	}
}

// AllOrNone builds a rule requiring that either every named field is
// filled in, or none is.
func AllOrNone(fields ...string) Rule {
	return func(posted schema.Record, errs Errors) bool {
		filled := 0
		for _, f := range fields {
			if schema.ValueLen(posted[f]) > 0 {
				filled++
			}
		}
		if filled == 0 || filled == len(fields) {
			return true
		}
		for _, f := range fields {
			if schema.ValueLen(posted[f]) == 0 {
				if _, taken := errs[f]; !taken {
					errs[f] = MsgRequired
				}
			}
		}
		return false
	}
}
