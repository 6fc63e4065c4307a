package metadata

import "errors"

var (
	ErrModuleNotFound    = errors.New("module not found")
	ErrFieldNotFound     = errors.New("field not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrValidation        = errors.New("module validation error")
	ErrDuplicateSource   = errors.New("duplicate convert_meta source")
	ErrIncompatibleTypes = errors.New("incompatible field types")
	ErrNotConfirmed      = errors.New("destructive action not confirmed")
)
