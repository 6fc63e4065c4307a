package lead

import "errors"

var ErrLeadNotFound = errors.New("lead not found")

// ValidationError carries per-field messages back to the handler.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "lead validation error"
}
