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

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// Date parses an ISO date (2006-01-02) and records a violation on failure.
func Date(field, value string, v Violations) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		v[field] = "invalid_date"
		return time.Time{}
	}
	return t
}
