package result

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessCarriesValue(t *testing.T) {
	r := Success(42)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsInvalid())
	assert.Equal(t, 42, r.Value())
	assert.True(t, r.Error().IsNone())
	assert.Equal(t, http.StatusOK, r.StatusCode())
}

func TestFailureCarriesError(t *testing.T) {
	r := Failure[int](NotFound("exercise not found"))

	assert.False(t, r.IsSuccess())
	assert.Equal(t, CodeNotFound, r.Error().Code)
	assert.Equal(t, http.StatusNotFound, r.StatusCode())
	assert.Nil(t, r.Errors())
}

func TestFailureWithNonePanics(t *testing.T) {
	assert.Panics(t, func() {
		Failure[int](None)
	})
}

func TestValueOfFailedResultPanics(t *testing.T) {
	r := Failure[string](BadRequest("nope"))

	assert.Panics(t, func() {
		r.Value()
	})
}

func TestValidationCarriesAllViolations(t *testing.T) {
	r := Validation[int](
		Invalid("name is required"),
		Invalid("pageSize must be at least 1"),
	)

	require.True(t, r.IsInvalid())
	assert.Len(t, r.Errors(), 2)
	assert.Equal(t, CodeValidation, r.Error().Code)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode())
}

func TestValidationWithNoErrorsPanics(t *testing.T) {
	assert.Panics(t, func() {
		Validation[int]()
	})
}

func TestValidationWithNoneErrorPanics(t *testing.T) {
	assert.Panics(t, func() {
		Validation[int](Invalid("ok"), None)
	})
}

func TestStatusCodeMirrorsError(t *testing.T) {
	tests := []struct {
		name     string
		err      Error
		expected int
	}{
		{"bad request", BadRequest("x"), http.StatusBadRequest},
		{"not found", NotFound("x"), http.StatusNotFound},
		{"naming conflict", NamingConflict("x"), http.StatusConflict},
		{"duplicate entry", DuplicateEntry("x"), http.StatusConflict},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"concurrency", Concurrency("x"), http.StatusConflict},
		{"database", Database(nil), http.StatusInternalServerError},
		{"canceled", Canceled("x"), 499},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Failure[struct{}](tt.err)
			assert.Equal(t, tt.expected, r.StatusCode())
		})
	}
}

func TestOkIsVoidSuccess(t *testing.T) {
	r := Ok()

	assert.True(t, r.IsSuccess())
	assert.Equal(t, Void{}, r.Value())
}

func TestFailPromotesError(t *testing.T) {
	r := Fail(Unauthorized("not yours"))

	assert.False(t, r.IsSuccess())
	assert.Equal(t, CodeUnauth, r.Error().Code)
}
