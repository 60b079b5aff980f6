package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// ISODate flags a non-empty value that is not a calendar date (YYYY-MM-DD).
// Empty values are left to Required.
func ISODate(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v[field] = "invalid_date"
	}
}
