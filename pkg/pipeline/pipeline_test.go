package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/repstack/repstack/pkg/result"
)

type testRequest struct {
	Name string
	Age  int
}

func nameRule(_ context.Context, req testRequest) []result.Error {
	if req.Name == "" {
		return []result.Error{result.Invalid("name is required")}
	}
	return nil
}

func ageRule(_ context.Context, req testRequest) []result.Error {
	if req.Age < 0 {
		return []result.Error{result.Invalid("age must not be negative")}
	}
	return nil
}

func TestValidationPassesThroughOnCleanRequest(t *testing.T) {
	calls := 0
	h := Wrap(func(ctx context.Context, req testRequest) result.Result[string] {
		calls++
		return result.Success(req.Name)
	}, zap.NewNop(), nameRule, ageRule)

	res := h(context.Background(), testRequest{Name: "squat", Age: 1})

	require.True(t, res.IsSuccess())
	assert.Equal(t, "squat", res.Value())
	assert.Equal(t, 1, calls)
}

func TestValidationCollectsAllViolationsAndSkipsHandler(t *testing.T) {
	calls := 0
	h := Wrap(func(ctx context.Context, req testRequest) result.Result[string] {
		calls++
		return result.Success("never")
	}, zap.NewNop(), nameRule, ageRule)

	res := h(context.Background(), testRequest{Name: "", Age: -1})

	require.True(t, res.IsInvalid())
	assert.Len(t, res.Errors(), 2)
	assert.Equal(t, 0, calls)
}

func TestCheckAdaptsSingleViolationPredicate(t *testing.T) {
	rule := Check(func(_ context.Context, req testRequest) *result.Error {
		if req.Age > 150 {
			e := result.Invalid("age is implausible")
			return &e
		}
		return nil
	})

	assert.Nil(t, rule(context.Background(), testRequest{Age: 30}))
	assert.Len(t, rule(context.Background(), testRequest{Age: 200}), 1)
}

func TestAsyncRuleReceivesContext(t *testing.T) {
	type key struct{}
	seen := false
	rule := func(ctx context.Context, _ testRequest) []result.Error {
		seen = ctx.Value(key{}) == "marker"
		return nil
	}
	h := Wrap(func(ctx context.Context, req testRequest) result.Result[string] {
		return result.Success("ok")
	}, zap.NewNop(), rule)

	ctx := context.WithValue(context.Background(), key{}, "marker")
	h(ctx, testRequest{Name: "x"})

	assert.True(t, seen)
}

func TestCanceledContextShortCircuits(t *testing.T) {
	calls := 0
	h := Wrap(func(ctx context.Context, req testRequest) result.Result[string] {
		calls++
		return result.Success("never")
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := h(ctx, testRequest{Name: "x"})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, result.CodeCanceled, res.Error().Code)
	assert.Equal(t, 0, calls)
}

func TestRuleStorageFailureFailsRequestNotValidation(t *testing.T) {
	calls := 0
	storageRule := func(_ context.Context, _ testRequest) []result.Error {
		return []result.Error{result.Database(errors.New("storage unreachable"))}
	}
	h := Wrap(func(ctx context.Context, req testRequest) result.Result[string] {
		calls++
		return result.Success("never")
	}, zap.NewNop(), nameRule, storageRule)

	res := h(context.Background(), testRequest{Name: "x"})

	require.False(t, res.IsSuccess())
	assert.False(t, res.IsInvalid())
	assert.Equal(t, result.CodeDatabase, res.Error().Code)
	assert.Equal(t, 0, calls)
}

func TestLoggingSeverityFollowsOutcome(t *testing.T) {
	tests := []struct {
		name     string
		res      result.Result[string]
		level    zap.AtomicLevel
		expected string
	}{
		{"success logs info", result.Success("ok"), zap.NewAtomicLevel(), "request completed"},
		{"validation logs warn", result.Validation[string](result.Invalid("bad")), zap.NewAtomicLevel(), "request failed validation"},
		{"not found logs warn", result.Failure[string](result.NotFound("gone")), zap.NewAtomicLevel(), "request failed"},
		{"database logs error", result.Failure[string](result.Database(nil)), zap.NewAtomicLevel(), "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			h := Logging[testRequest, string](zap.New(core))(
				func(ctx context.Context, req testRequest) result.Result[string] {
					return tt.res
				})

			h(context.Background(), testRequest{})

			entries := logs.FilterMessage(tt.expected).All()
			require.NotEmpty(t, entries)
		})
	}
}

func TestLoggingOutcomeLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	Logging[testRequest, string](logger)(
		func(ctx context.Context, req testRequest) result.Result[string] {
			return result.Failure[string](result.Database(nil))
		})(context.Background(), testRequest{})

	Logging[testRequest, string](logger)(
		func(ctx context.Context, req testRequest) result.Result[string] {
			return result.Failure[string](result.NotFound("gone"))
		})(context.Background(), testRequest{})

	assert.Len(t, logs.FilterLevelExact(zap.ErrorLevel).All(), 1)
	assert.Len(t, logs.FilterLevelExact(zap.WarnLevel).All(), 1)
}

func TestLoggingRecoversLogsAndRepanics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := Logging[testRequest, string](zap.New(core))(
		func(ctx context.Context, req testRequest) result.Result[string] {
			panic("boom")
		})

	assert.Panics(t, func() {
		h(context.Background(), testRequest{})
	})
	assert.Len(t, logs.FilterMessage("request panicked").All(), 1)
}
