// Package validation carries per-field input violations from use cases to
// the HTTP layer, which renders them as an errorsList alongside the message.
package validation

import "strings"

// Error aggregates one or more field-level violations.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "errors during validation: " + strings.Join(e.Violations, "; ")
}

// Check returns an *Error when any violations were collected, nil otherwise.
func Check(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &Error{Violations: violations}
}
