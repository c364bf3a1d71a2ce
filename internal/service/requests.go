// Package service contains the business handlers. Every handler is built on
// the request pipeline: a rule-set validated first, the handler next, outcome
// logging around both. Handlers return results, never errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/pkg/paging"
	"github.com/repstack/repstack/pkg/pipeline"
	"github.com/repstack/repstack/pkg/result"
	"github.com/repstack/repstack/pkg/validator"
)

// ListRequest is the caller's paged-query intent for any listing operation.
type ListRequest struct {
	Caller domain.Identity
	Query  paging.Request
}

// structRule validates a request by its struct tags.
func structRule[Req any]() pipeline.Rule[Req] {
	return func(ctx context.Context, req Req) []result.Error {
		return validator.Struct(req)
	}
}

// pageRule rejects out-of-range page parameters instead of clamping them.
// Absent parameters were already replaced with the defaults at the binding
// layer, so a zero here is an explicit zero and gets rejected like any other
// out-of-range value.
func pageRule(ctx context.Context, req ListRequest) []result.Error {
	var errs []result.Error
	if req.Query.PageNumber < 1 {
		errs = append(errs, result.Invalid("page must be at least 1"))
	}
	if req.Query.PageSize < 1 {
		errs = append(errs, result.Invalid("pageSize must be at least 1"))
	} else if req.Query.PageSize > 100 {
		errs = append(errs, result.Invalid("pageSize must be at most 100"))
	}
	return errs
}

// parseTimestamp parses the wire format used for caller-supplied instants.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// performedAtRule rejects unparseable timestamps; emptiness is left to the
// struct-tag rules so both violations can be reported independently.
func performedAtRule[Req any](get func(Req) string) pipeline.Rule[Req] {
	return pipeline.Check(func(ctx context.Context, req Req) *result.Error {
		v := get(req)
		if v == "" {
			return nil
		}
		if _, err := parseTimestamp(v); err != nil {
			e := result.Invalid("performedAt must be an RFC 3339 timestamp")
			return &e
		}
		return nil
	})
}

// mapStorageErr translates storage sentinels into result errors. Anything
// unrecognized surfaces as a DatabaseError and is logged at error level by
// the pipeline's logging stage.
func mapStorageErr(err error, what string) result.Error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return result.NotFound(what + " not found")
	case errors.Is(err, domain.ErrConflict):
		return result.Concurrency(fmt.Sprintf("the %s was modified by another request; re-read and retry", what))
	case errors.Is(err, domain.ErrDuplicate):
		return result.NamingConflict("a " + what + " with that name already exists")
	default:
		return result.Database(err)
	}
}
