package section

import "errors"

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrValidation      = errors.New("section validation error")
)
