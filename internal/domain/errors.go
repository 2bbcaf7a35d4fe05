package domain

import "errors"

// Record and authorization errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("access denied")
	ErrValidation      = errors.New("invalid input")
	ErrUnknownDomain   = errors.New("unknown skill domain")
	ErrAlreadyAnalyzed = errors.New("analysis has already been performed for this record")
)

// Collaborator errors
var (
	ErrUpstream        = errors.New("analysis service request failed")
	ErrStorage         = errors.New("object storage request failed")
	ErrPayloadTooLarge = errors.New("file exceeds the size limit")
)
