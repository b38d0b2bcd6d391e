package params

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
)

// QueryParams carries the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string

	filters url.Values
}

// NewQueryParams reads page, limit and q from the request, clamping to sane
// bounds.
func NewQueryParams(ctx echo.Context) *QueryParams {
	qp := &QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     ctx.QueryParam("q"),
		filters:    url.Values{},
	}

	if page, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && page > 0 {
		qp.PageNumber = page
	}
	if limit, err := strconv.Atoi(ctx.QueryParam("limit")); err == nil && limit > 0 {
		qp.PageSize = limit
	}
	if qp.PageSize > constants.MaxPageSize {
		qp.PageSize = constants.MaxPageSize
	}
	return qp
}

// Add records an extra filter key/value.
func (q *QueryParams) Add(key, value string) {
	q.filters.Add(key, value)
}

// Filter returns the first value recorded for key, or "".
func (q *QueryParams) Filter(key string) string {
	return q.filters.Get(key)
}

// Offset returns the SQL offset for the current page.
func (q *QueryParams) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// Encode renders the params as a query string, for paging links.
func (q *QueryParams) Encode() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.PageNumber))
	v.Set("limit", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	for key, vals := range q.filters {
		for _, val := range vals {
			v.Add(key, val)
		}
	}
	return v.Encode()
}
