package postgres

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/repstack/repstack/pkg/paging"
)

var dialect = goqu.Dialect("postgres")

// listSpec is the storage-side twin of paging.Source: the searchable columns
// and the whitelist of sort keys for one table.
type listSpec struct {
	searchCols []string
	sortCols   map[string]string
}

// compose applies a paging request to a base dataset in the fixed filter,
// sort, page order and returns the page query plus the count query over the
// filtered (pre-paging) set. Unknown sort keys leave the dataset unordered.
func (s listSpec) compose(ds *goqu.SelectDataset, req paging.Request) (items, count *goqu.SelectDataset) {
	if req.SearchTerm != "" {
		ors := make([]goqu.Expression, 0, len(s.searchCols))
		for _, col := range s.searchCols {
			ors = append(ors, goqu.I(col).ILike("%"+req.SearchTerm+"%"))
		}
		ds = ds.Where(goqu.Or(ors...))
	}

	count = ds.Select(goqu.COUNT(goqu.Star()))

	if col, ok := s.sortCols[strings.ToLower(req.SortBy)]; ok {
		if req.SortOrder == paging.Descending {
			ds = ds.Order(goqu.I(col).Desc())
		} else {
			ds = ds.Order(goqu.I(col).Asc())
		}
	}

	items = ds.Limit(uint(req.PageSize)).Offset(uint(req.Offset()))
	return items, count
}
