package conversion

import "errors"

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrOwnerNotFound = errors.New("owner not found")
)

// ValidationError carries per-field messages for a malformed deal payload.
// It is raised before any write happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "deal payload validation failed"
}
