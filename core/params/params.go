package params

import (
	"club-api/core/constants"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// NewQueryParams reads page_number, page_size and search from the request.
func NewQueryParams(c echo.Context) QueryParams {
	page, err := strconv.Atoi(c.QueryParam("page_number"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || size < 1 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return QueryParams{
		PageNumber: page,
		PageSize:   size,
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}
