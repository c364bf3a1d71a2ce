// Package paging implements the entity-agnostic paged-query engine: a caller
// supplied Request is applied to a collection as filter, then sort, then page,
// and the result is assembled into a Page with totals counted on the filtered
// pre-paging set.
package paging

import (
	"sort"
	"strings"
)

// Order is the requested sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Defaults applied by Normalized to absent request fields.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Request describes a caller's paging, sorting and filtering intent. Page
// arithmetic is 1-based throughout; non-positive page values are rejected by
// the validation stage upstream, not clamped here.
type Request struct {
	SearchTerm string `form:"search" json:"search"`
	SortBy     string `form:"sortBy" json:"sortBy"`
	SortOrder  Order  `form:"sortOrder" json:"sortOrder"`
	PageNumber int    `form:"page" json:"page"`
	PageSize   int    `form:"pageSize" json:"pageSize"`
}

// Normalized returns a copy with defaults applied to zero-valued fields. It
// belongs at the binding layer, where an absent parameter arrives as zero;
// the engine itself never substitutes defaults, so an explicit zero that
// slips past validation pages nothing rather than something unasked-for.
func (r Request) Normalized() Request {
	if r.PageNumber == 0 {
		r.PageNumber = DefaultPageNumber
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	if r.descending() {
		r.SortOrder = Descending
	} else {
		r.SortOrder = Ascending
	}
	return r
}

// descending folds case so "DESC" from the wire orders the same as "desc".
func (r Request) descending() bool {
	return strings.EqualFold(string(r.SortOrder), string(Descending))
}

// Offset returns the number of items skipped before the requested page.
func (r Request) Offset() int {
	return (r.PageNumber - 1) * r.PageSize
}

// Page is one page of results plus the pagination metadata callers need to
// render further pages.
type Page[T any] struct {
	Data       []T `json:"data"`
	PageNumber int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewPage assembles a Page from already-paged data and the total count of
// matching (filtered, pre-paging) items.
func NewPage[T any](data []T, r Request, totalItems int) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if r.PageSize > 0 {
		totalPages = (totalItems + r.PageSize - 1) / r.PageSize
	}
	return Page[T]{
		Data:       data,
		PageNumber: r.PageNumber,
		PageSize:   r.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Source is the per-entity-type capability the engine composes: a free-text
// match predicate and an ordered map of lower-cased sort keys to comparisons.
// The engine itself knows nothing about T's shape.
type Source[T any] struct {
	Match    func(item T, term string) bool
	SortKeys map[string]func(a, b T) int
}

// ApplyFilter restricts items to those matching the request's search term.
// An empty term is the identity transformation.
func (s Source[T]) ApplyFilter(items []T, r Request) []T {
	if r.SearchTerm == "" || s.Match == nil {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if s.Match(item, r.SearchTerm) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ApplySorting orders items by the registered comparison for the requested
// key. An empty or unregistered key leaves the input order unchanged; sorting
// is a no-op there, never an error. Descending reverses the comparison.
func (s Source[T]) ApplySorting(items []T, r Request) []T {
	cmp, ok := s.SortKeys[strings.ToLower(r.SortBy)]
	if r.SortBy == "" || !ok {
		return items
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	desc := r.descending()
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return cmp(sorted[j], sorted[i]) < 0
		}
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// ApplyPaging skips (PageNumber-1)*PageSize items and takes up to PageSize.
// It must run after filter and sort so page boundaries are stable relative to
// the logical ordering.
func ApplyPaging[T any](items []T, r Request) []T {
	offset := r.Offset()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + r.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// Execute runs the full filter, sort, page composition over items and
// assembles the Page. TotalItems counts the filtered set, not the backing
// collection, so the returned numbers are internally consistent. The request
// is taken as given: validation upstream guarantees positive page values, and
// the engine never substitutes defaults for what the caller sent.
func (s Source[T]) Execute(items []T, r Request) Page[T] {
	filtered := s.ApplyFilter(items, r)
	sorted := s.ApplySorting(filtered, r)
	return NewPage(ApplyPaging(sorted, r), r, len(filtered))
}

// ContainsFold reports whether s contains substr under Unicode case folding;
// the common Match predicate for name-searchable entities.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
