// Package result provides the success/failure value types every handler
// returns instead of raising errors for expected business outcomes.
package result

import "net/http"

// Stable machine-readable error codes.
const (
	CodeBadRequest  = "BadRequest"
	CodeValidation  = "Validation"
	CodeNotFound    = "NotFound"
	CodeNaming      = "NamingConflict"
	CodeDuplicate   = "DuplicateEntry"
	CodeUnauth      = "Unauthorized"
	CodeConcurrency = "ConcurrencyError"
	CodeDatabase    = "DatabaseError"
	CodeCanceled    = "Canceled"
)

// statusClientClosedRequest is the nginx-convention status for a caller that
// went away before the response; the stdlib has no constant for it.
const statusClientClosedRequest = 499

// Error is an immutable outcome descriptor compared by value.
type Error struct {
	Code        string `json:"code"`
	Status      int    `json:"statusCode"`
	Description string `json:"description,omitempty"`
}

// None is the distinguished "no error" value carried by successful results.
var None = Error{}

// IsNone reports whether e represents the absence of an error.
func (e Error) IsNone() bool {
	return e == None
}

// errValidation is the fixed sentinel carried by validation-variant failures;
// callers branch on the category first, then inspect the per-field list.
var errValidation = Error{
	Code:        CodeValidation,
	Status:      http.StatusBadRequest,
	Description: "one or more validation errors occurred",
}

// BadRequest describes malformed input with no more specific code.
func BadRequest(desc string) Error {
	return Error{Code: CodeBadRequest, Status: http.StatusBadRequest, Description: desc}
}

// Invalid describes a single field-level rule violation.
func Invalid(desc string) Error {
	return Error{Code: CodeValidation, Status: http.StatusBadRequest, Description: desc}
}

// NotFound describes a missing entity.
func NotFound(desc string) Error {
	return Error{Code: CodeNotFound, Status: http.StatusNotFound, Description: desc}
}

// NamingConflict describes a name uniqueness violation.
func NamingConflict(desc string) Error {
	return Error{Code: CodeNaming, Status: http.StatusConflict, Description: desc}
}

// DuplicateEntry describes a non-name uniqueness violation.
func DuplicateEntry(desc string) Error {
	return Error{Code: CodeDuplicate, Status: http.StatusConflict, Description: desc}
}

// Unauthorized describes a caller acting outside its ownership or role.
func Unauthorized(desc string) Error {
	return Error{Code: CodeUnauth, Status: http.StatusUnauthorized, Description: desc}
}

// Concurrency describes an optimistic-lock conflict on a versioned entity.
func Concurrency(desc string) Error {
	return Error{Code: CodeConcurrency, Status: http.StatusConflict, Description: desc}
}

// Canceled describes a request abandoned by its caller before completion.
func Canceled(desc string) Error {
	return Error{Code: CodeCanceled, Status: statusClientClosedRequest, Description: desc}
}

// Database wraps an unexpected storage failure with its message attached.
func Database(err error) Error {
	desc := "unexpected storage failure"
	if err != nil {
		desc = err.Error()
	}
	return Error{Code: CodeDatabase, Status: http.StatusInternalServerError, Description: desc}
}

// Void is the value type for results of operations that return nothing.
type Void struct{}

// Result is the outcome of an operation: either a value of T, or an Error.
// The zero Result is not valid; use the constructors.
type Result[T any] struct {
	ok    bool
	value T
	err   Error
	errs  []Error
}

// Success returns a successful Result carrying v and no error.
func Success[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Ok returns a successful Result for void operations.
func Ok() Result[Void] {
	return Success(Void{})
}

// Failure returns a failed Result carrying err. Panics if err is None: a
// failure without an error is a programming bug, not a recoverable state.
func Failure[T any](err Error) Result[T] {
	if err.IsNone() {
		panic("result: failure constructed with the None error")
	}
	return Result[T]{err: err}
}

// Fail is the promotion of an Error into a void failure Result.
func Fail(err Error) Result[Void] {
	return Failure[Void](err)
}

// Validation returns the validation-variant failure carrying one error per
// violated field rule. Panics when errs is empty or contains None.
func Validation[T any](errs ...Error) Result[T] {
	if len(errs) == 0 {
		panic("result: validation failure constructed with no errors")
	}
	for _, e := range errs {
		if e.IsNone() {
			panic("result: validation failure constructed with the None error")
		}
	}
	return Result[T]{err: errValidation, errs: errs}
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsInvalid reports whether the failure is the validation variant.
func (r Result[T]) IsInvalid() bool {
	return !r.ok && r.err.Code == CodeValidation && len(r.errs) > 0
}

// Error returns the carried Error; None iff the result is successful.
func (r Result[T]) Error() Error {
	return r.err
}

// Errors returns the ordered field-level violations of a validation failure,
// nil for every other outcome.
func (r Result[T]) Errors() []Error {
	return r.errs
}

// StatusCode mirrors the carried error's HTTP classification; 200 on success.
func (r Result[T]) StatusCode() int {
	if r.ok {
		return http.StatusOK
	}
	return r.err.Status
}

// Value returns the carried value. Reading the value of a failed Result is a
// contract violation and panics.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: value read from a failed result (" + r.err.Code + ")")
	}
	return r.value
}
