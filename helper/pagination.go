package helper

import (
	"math"
	"strconv"
	"strings"
)

// Page is one bounded, 1-indexed window of an ordered result set.
type Page struct {
	Number       int   `json:"number"`
	Size         int   `json:"size"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
}

// Paginate resolves a raw page parameter against the total record count.
// Anything that is not a valid integer falls back to page 1, and a page
// number past the end resolves to the last page. Bad paging input is
// recovered silently, never surfaced as an error.
func Paginate(rawPage string, size int, total int64) Page {
	if size < 1 {
		size = 1
	}

	page := 1
	if n, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && n > 1 {
		page = n
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Page{Number: page, Size: size, TotalPages: totalPages, TotalRecords: total}
}

// Offset is what the page means to an OFFSET/LIMIT query.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
