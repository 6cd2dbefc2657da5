package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	defaultPageSize = 20      // Default page size
	maxPageSize     = 100     // Upper bound for page_size
	maxPage         = 1 << 20 // Keeps the row offset far from overflow
)

// pageParams reads page and page_size, ignoring invalid values
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1 // Default page number
	pageSize = defaultPageSize
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = min(v, maxPage) // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}

// totalPages rounds up
func totalPages(total int64, pageSize int) int {
	return (int(total) + pageSize - 1) / pageSize
}

// idParam parses the :id path segment
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
