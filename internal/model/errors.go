package model

import "strings"

// FieldError is one validation failure, tied to the form field it concerns.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the result of validating a form. An empty list means the
// input passed.
type FieldErrors []FieldError

// Error joins all messages so a FieldErrors can be shown as a single flash
// message.
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether a specific field failed validation.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}
