package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/repstack/repstack/pkg/paging"
	"github.com/repstack/repstack/pkg/result"
)

// respond translates a Result into the HTTP response: the carried value with
// the mirrored status code, the full violation list for validation failures,
// or the single error descriptor otherwise.
func respond[T any](c *gin.Context, r result.Result[T]) {
	if r.IsSuccess() {
		c.JSON(http.StatusOK, r.Value())
		return
	}
	if r.IsInvalid() {
		c.JSON(r.StatusCode(), gin.H{"errors": r.Errors()})
		return
	}
	c.JSON(r.StatusCode(), gin.H{"errors": []result.Error{r.Error()}})
}

// respondCreated is respond with 201 on the success path.
func respondCreated[T any](c *gin.Context, r result.Result[T]) {
	if r.IsSuccess() {
		c.JSON(http.StatusCreated, r.Value())
		return
	}
	respond(c, r)
}

// respondNoContent is respond with an empty 204 on the success path.
func respondNoContent(c *gin.Context, r result.Result[result.Void]) {
	if r.IsSuccess() {
		c.Status(http.StatusNoContent)
		return
	}
	respond(c, r)
}

// pagingQuery is the wire shape of the paging parameters. Page and PageSize
// bind as pointers so an absent parameter is distinguishable from an explicit
// zero: absence takes the defaults here, while an explicit out-of-range value
// survives to the validation stage and is rejected there.
type pagingQuery struct {
	Search    string       `form:"search"`
	SortBy    string       `form:"sortBy"`
	SortOrder paging.Order `form:"sortOrder"`
	Page      *int         `form:"page"`
	PageSize  *int         `form:"pageSize"`
}

// bindPaging reads the query-string paging parameters. Malformed values are
// reported immediately; range checks belong to the validation stage.
func bindPaging(c *gin.Context) (paging.Request, bool) {
	var q pagingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []result.Error{result.BadRequest("malformed query parameters")},
		})
		return paging.Request{}, false
	}
	req := paging.Request{
		SearchTerm: q.Search,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		PageNumber: paging.DefaultPageNumber,
		PageSize:   paging.DefaultPageSize,
	}
	if q.Page != nil {
		req.PageNumber = *q.Page
	}
	if q.PageSize != nil {
		req.PageSize = *q.PageSize
	}
	return req, true
}

// pathID parses the :id path segment as a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []result.Error{result.BadRequest("invalid id format")},
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body into req, reporting malformed payloads
// before the validation stage ever sees them.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []result.Error{result.BadRequest("malformed request body")},
		})
		return false
	}
	return true
}
