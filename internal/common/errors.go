// Package common defines shared constants and sentinel errors used across
// the file manager. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Account validation errors.
	ErrorMissingEmail    = errors.New("missing email")
	ErrorMissingPassword = errors.New("missing password")

	// Upload validation errors.
	ErrorMissingName = errors.New("missing name")
	ErrorInvalidKind = errors.New("invalid kind")
	ErrorMissingData = errors.New("missing data")

	// Parent resolution errors.
	ErrorParentNotFound   = errors.New("parent not found")
	ErrorParentNotAFolder = errors.New("parent is not a folder")

	// Retrieval errors.
	ErrorNoContent          = errors.New("a folder doesn't have content")
	ErrorInvalidSizeVariant = errors.New("invalid size variant")
)
