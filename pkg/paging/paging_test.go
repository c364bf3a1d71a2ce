package paging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	Rank int
}

var itemSource = Source[item]{
	Match: func(i item, term string) bool {
		return ContainsFold(i.Name, term)
	},
	SortKeys: map[string]func(a, b item) int{
		"name": func(a, b item) int { return strings.Compare(a.Name, b.Name) },
		"rank": func(a, b item) int { return a.Rank - b.Rank },
	},
}

func seed(names ...string) []item {
	items := make([]item, len(names))
	for i, n := range names {
		items[i] = item{Name: n, Rank: i}
	}
	return items
}

func TestExecuteFiltersBySearchTerm(t *testing.T) {
	items := seed("Barbell", "Dumbbell", "Cable", "Kettlebell")

	page := itemSource.Execute(items, Request{SearchTerm: "bell", PageNumber: 1, PageSize: 10})

	require.Equal(t, 3, page.TotalItems)
	names := make([]string, 0, len(page.Data))
	for _, i := range page.Data {
		names = append(names, i.Name)
	}
	assert.ElementsMatch(t, []string{"Barbell", "Dumbbell", "Kettlebell"}, names)
}

func TestEmptySearchTermIsIdentity(t *testing.T) {
	items := seed("Barbell", "Dumbbell", "Cable")

	filtered := itemSource.ApplyFilter(items, Request{})

	assert.Equal(t, items, filtered)
}

func TestThirdPageOfFive(t *testing.T) {
	items := seed("a", "b", "c", "d", "e")

	page := itemSource.Execute(items, Request{PageNumber: 3, PageSize: 2})

	require.Len(t, page.Data, 1)
	assert.Equal(t, "e", page.Data[0].Name)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestSortAscendingAndDescending(t *testing.T) {
	items := seed("Cable", "Barbell", "Dumbbell")

	asc := itemSource.ApplySorting(items, Request{SortBy: "name"})
	require.Len(t, asc, 3)
	assert.Equal(t, "Barbell", asc[0].Name)
	assert.Equal(t, "Dumbbell", asc[2].Name)

	desc := itemSource.ApplySorting(items, Request{SortBy: "name", SortOrder: Descending})
	assert.Equal(t, "Dumbbell", desc[0].Name)
	assert.Equal(t, "Barbell", desc[2].Name)
}

func TestSortKeyIsCaseInsensitive(t *testing.T) {
	items := seed("Cable", "Barbell")

	sorted := itemSource.ApplySorting(items, Request{SortBy: "NAME"})

	assert.Equal(t, "Barbell", sorted[0].Name)
}

func TestUnknownSortKeyIsNoOp(t *testing.T) {
	items := seed("Cable", "Barbell", "Dumbbell")

	sorted := itemSource.ApplySorting(items, Request{SortBy: "weight"})

	assert.Equal(t, items, sorted)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := seed("Cable", "Barbell")

	_ = itemSource.ApplySorting(items, Request{SortBy: "name"})

	assert.Equal(t, "Cable", items[0].Name)
}

func TestApplyPagingIsIdempotent(t *testing.T) {
	items := seed("a", "b", "c", "d", "e")
	req := Request{PageNumber: 1, PageSize: 2}

	once := ApplyPaging(items, req)
	twice := ApplyPaging(once, req)

	assert.Equal(t, once, twice)
}

func TestPageBeyondEndIsEmpty(t *testing.T) {
	items := seed("a", "b")

	page := itemSource.Execute(items, Request{PageNumber: 5, PageSize: 10})

	assert.Empty(t, page.Data)
	assert.Equal(t, 2, page.TotalItems)
}

func TestTotalPagesCeiling(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		pageSize   int
		expected   int
	}{
		{"exact multiple", 10, 5, 2},
		{"with remainder", 11, 5, 3},
		{"single partial page", 1, 10, 1},
		{"empty", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage([]item{}, Request{PageNumber: 1, PageSize: tt.pageSize}, tt.totalItems)
			assert.Equal(t, tt.expected, page.TotalPages)
		})
	}
}

func TestTotalCountsFilteredSet(t *testing.T) {
	items := seed("Barbell", "Dumbbell", "Cable", "Kettlebell", "Bench")

	page := itemSource.Execute(items, Request{SearchTerm: "bell", PageNumber: 1, PageSize: 2})

	assert.Len(t, page.Data, 2)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
}

func TestExecuteNeverSubstitutesDefaults(t *testing.T) {
	items := seed("a", "b", "c")

	page := itemSource.Execute(items, Request{PageNumber: 1, PageSize: 0})

	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.PageSize)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 3, page.TotalItems)
}

func TestDescendingFoldsCase(t *testing.T) {
	items := seed("Barbell", "Cable")

	sorted := itemSource.ApplySorting(items, Request{SortBy: "name", SortOrder: "DESC"})

	assert.Equal(t, "Cable", sorted[0].Name)
}

func TestNormalizedAppliesDefaults(t *testing.T) {
	r := Request{}.Normalized()

	assert.Equal(t, DefaultPageNumber, r.PageNumber)
	assert.Equal(t, DefaultPageSize, r.PageSize)
	assert.Equal(t, Ascending, r.SortOrder)
}

func TestNewPageNeverReturnsNilData(t *testing.T) {
	page := NewPage[item](nil, Request{PageNumber: 1, PageSize: 10}, 0)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}
