package form

import "errors"

// Domain errors for form state and validation

var (
	// Mutation errors
	ErrUnknownSection = errors.New("unknown section key")
	ErrUnknownField   = errors.New("unknown field key")

	// Field validation errors
	ErrClientRequired = errors.New("client name is required")
	ErrInvalidPeriod  = errors.New("period must be in YYYY-YYYY format")

	// File rejection reasons
	ErrFileTooLarge    = errors.New("file exceeds maximum size of 5 MiB")
	ErrUnsupportedType = errors.New("file type not supported, upload an image or PDF")
	ErrEmptyFileName   = errors.New("file has no name")
)
