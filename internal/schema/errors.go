package schema

import "errors"

var (
	// Source errors
	ErrUnavailable = errors.New("schema source unavailable")
	ErrEmptyTable  = errors.New("schema table has no usable rows")

	// Validation errors
	ErrEmptySectionKey   = errors.New("empty section key")
	ErrDuplicateSection  = errors.New("duplicate section key")
	ErrEmptyFieldKey     = errors.New("field label normalizes to empty key")
	ErrDuplicateFieldKey = errors.New("duplicate normalized field key")
)
