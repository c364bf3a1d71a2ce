// Package optimistic implements the concurrency guard every mutation handler
// consults before writing: a caller-echoed version token is compared against
// the stored one, detecting lost updates without holding locks.
package optimistic

import (
	"github.com/google/uuid"

	"github.com/repstack/repstack/pkg/result"
)

// Versioned is any entity carrying a concurrency token. The storage layer is
// the sole writer of the token; callers read it back and echo it unchanged in
// update requests.
type Versioned interface {
	Version() string
}

// NewToken returns a fresh opaque token. Tokens are version stamps, not
// semantic values.
func NewToken() string {
	return uuid.NewString()
}

// Check compares the stored entity's token to the caller-supplied one.
// A nil return means the mutation may proceed. The absent-entity case is the
// caller's responsibility and must be checked before the token comparison.
func Check(stored Versioned, supplied string) *result.Error {
	if stored.Version() != supplied {
		err := result.Concurrency("the record was modified by another request; re-read and retry")
		return &err
	}
	return nil
}
