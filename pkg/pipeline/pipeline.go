// Package pipeline wraps business handlers with the two cross-cutting stages
// every request goes through: validation first, then outcome logging around
// the whole call. No handler ever runs against invalid input.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/repstack/repstack/pkg/result"
)

// Handler is a business handler producing a Result for a request.
type Handler[Req any, T any] func(ctx context.Context, req Req) result.Result[T]

// Rule is one entry of a request's rule-set, reporting zero or more field
// violations. A nil return means the rule passed. Rules receive the context
// because some of them reach storage (referenced-id existence).
type Rule[Req any] func(ctx context.Context, req Req) []result.Error

// Check adapts a single-violation predicate into a Rule.
func Check[Req any](fn func(ctx context.Context, req Req) *result.Error) Rule[Req] {
	return func(ctx context.Context, req Req) []result.Error {
		if e := fn(ctx, req); e != nil {
			return []result.Error{*e}
		}
		return nil
	}
}

// Middleware wraps a handler with a cross-cutting stage.
type Middleware[Req any, T any] func(next Handler[Req, T]) Handler[Req, T]

// Validation returns the stage that evaluates every rule against the request
// and short-circuits with the collected violation list when any rule fails.
// All applicable rules run; violations are reported together, not one at a
// time. A rule that cannot reach storage reports a DatabaseError; that is a
// storage fault, not a field violation, so it fails the request on its own
// rather than joining the validation list.
func Validation[Req any, T any](rules ...Rule[Req]) Middleware[Req, T] {
	return func(next Handler[Req, T]) Handler[Req, T] {
		return func(ctx context.Context, req Req) result.Result[T] {
			if err := ctx.Err(); err != nil {
				return result.Failure[T](result.Canceled("request canceled: " + err.Error()))
			}
			var errs []result.Error
			for _, rule := range rules {
				for _, e := range rule(ctx, req) {
					if e.Code == result.CodeDatabase {
						return result.Failure[T](e)
					}
					errs = append(errs, e)
				}
			}
			if len(errs) > 0 {
				return result.Validation[T](errs...)
			}
			return next(ctx, req)
		}
	}
}

// Logging returns the stage that brackets the whole call: a pre-invocation
// trace naming the request type, and a post-invocation record whose severity
// follows the outcome. A panic from the handler is logged at error level and
// re-raised; this stage observes, it does not swallow.
func Logging[Req any, T any](logger *zap.Logger) Middleware[Req, T] {
	return func(next Handler[Req, T]) Handler[Req, T] {
		return func(ctx context.Context, req Req) (res result.Result[T]) {
			name := fmt.Sprintf("%T", req)
			start := time.Now()
			logger.Debug("handling request",
				zap.String("request", name),
				zap.Time("started_at", start),
			)

			defer func() {
				if r := recover(); r != nil {
					logger.Error("request panicked",
						zap.String("request", name),
						zap.Any("panic", r),
						zap.Duration("elapsed", time.Since(start)),
					)
					panic(r)
				}
			}()

			res = next(ctx, req)

			fields := []zap.Field{
				zap.String("request", name),
				zap.Int("status", res.StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			}
			switch {
			case res.IsSuccess():
				logger.Info("request completed", fields...)
			case res.IsInvalid():
				logger.Warn("request failed validation",
					append(fields, zap.Any("violations", res.Errors()))...)
			case res.StatusCode() >= http.StatusInternalServerError:
				logger.Error("request failed",
					append(fields, zap.String("code", res.Error().Code),
						zap.String("description", res.Error().Description))...)
			default:
				logger.Warn("request failed",
					append(fields, zap.String("code", res.Error().Code),
						zap.String("description", res.Error().Description))...)
			}
			return res
		}
	}
}

// Wrap composes the standard pipeline around a handler: logging outermost so
// it observes the validation stage's outcome as well.
func Wrap[Req any, T any](h Handler[Req, T], logger *zap.Logger, rules ...Rule[Req]) Handler[Req, T] {
	return Logging[Req, T](logger)(Validation[Req, T](rules...)(h))
}
