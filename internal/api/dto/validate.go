package dto

import (
	"fmt"
	"net/mail"
)

// FieldErrors collects every violated field with human-readable reasons.
// A nil/empty map means the payload passed.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, reason string) {
	fe[field] = append(fe[field], reason)
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

func checkRequiredString(fe FieldErrors, field, value string, min, max int) {
	if value == "" {
		fe.add(field, "is required")
		return
	}
	checkLength(fe, field, value, min, max)
}

func checkLength(fe FieldErrors, field, value string, min, max int) {
	if len(value) < min {
		fe.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	if max > 0 && len(value) > max {
		fe.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func checkEmail(fe FieldErrors, field, value string) {
	if value == "" {
		fe.add(field, "is required")
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		fe.add(field, "must be a valid email address")
	}
	if len(value) > 100 {
		fe.add(field, "must be at most 100 characters")
	}
}

func checkNonNegative(fe FieldErrors, field string, value float64) {
	if value < 0 {
		fe.add(field, "must be greater than or equal to 0")
	}
}
