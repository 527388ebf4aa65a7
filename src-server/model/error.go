package model

import (
	"fmt"
	"strings"
)

// Raised by draft setters when a mutation would violate a field
// invariant. The draft is left unchanged when one of these is returned.
type ValidationError struct {
	msg  string
	args map[string]any
}

// Create a new validation error
func NewValidationError(msg string, args map[string]any) *ValidationError {
	if args == nil {
		args = make(map[string]any)
	}
	return &ValidationError{
		msg:  msg,
		args: args,
	}
}

// Get the error message
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.msg)
	for key, value := range e.args {
		sb.WriteString(fmt.Sprintf(" | %s: %v", key, value))
	}
	return sb.String()
}
