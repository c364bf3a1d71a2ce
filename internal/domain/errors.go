package domain

import "errors"

// Sentinel errors returned by the storage layer. Services translate these
// into result errors; they never cross the API boundary as raw errors.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrConflict  = errors.New("resource was modified concurrently")
	ErrDuplicate = errors.New("duplicate entry")
)
