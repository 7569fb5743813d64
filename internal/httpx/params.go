package httpx

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogapi/internal/storage"
)

// ParseID reads a positive integer path parameter. On failure it writes a 400
// and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		Abort(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// Pager holds the page size limits applied to list queries.
type Pager struct {
	DefaultPerPage int
	MaxPerPage     int
}

// Parse reads page and per_page from the query string. When neither is
// present the returned PageArgs selects every row. per_page above the
// maximum is capped. A page whose row offset overflows int is invalid.
// On invalid input it writes a 400 and returns false.
func (p Pager) Parse(c *gin.Context) (storage.PageArgs, bool) {
	pageStr, hasPage := c.GetQuery("page")
	perPageStr, hasPerPage := c.GetQuery("per_page")
	if !hasPage && !hasPerPage {
		return storage.PageArgs{}, true
	}

	args := storage.PageArgs{Page: 1, PerPage: p.DefaultPerPage}
	if hasPage {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			Abort(c, http.StatusBadRequest, "invalid page")
			return storage.PageArgs{}, false
		}
		args.Page = n
	}
	if hasPerPage {
		n, err := strconv.Atoi(perPageStr)
		if err != nil || n < 1 {
			Abort(c, http.StatusBadRequest, "invalid per_page")
			return storage.PageArgs{}, false
		}
		args.PerPage = min(n, p.MaxPerPage)
	}
	// The row offset must fit in an int.
	if args.PerPage > 0 && args.Page > math.MaxInt/args.PerPage {
		Abort(c, http.StatusBadRequest, "invalid page")
		return storage.PageArgs{}, false
	}
	return args, true
}

// Page is the paginated list envelope.
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	Data        []T   `json:"data"`
}

// NewPage builds the envelope for one page of a listing.
func NewPage[T any](items []T, total int64, args storage.PageArgs) Page[T] {
	if items == nil {
		items = []T{}
	}
	last := 1
	if args.PerPage > 0 && total > 0 {
		last = int(math.Ceil(float64(total) / float64(args.PerPage)))
	}
	return Page[T]{
		CurrentPage: args.Page,
		PerPage:     args.PerPage,
		Total:       total,
		LastPage:    last,
		Data:        items,
	}
}

// List writes items as a page envelope when the request asked for a page,
// otherwise as a plain array.
func List[T any](c *gin.Context, items []T, total int64, args storage.PageArgs) {
	if args.Paginated() {
		c.JSON(http.StatusOK, NewPage(items, total, args))
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}
