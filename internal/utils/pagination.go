package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mtakagi/task-manager-api/internal/constants"
)

// PaginationParams holds the skip/limit window for list queries
type PaginationParams struct {
	Skip  int
	Limit int
}

// GetPaginationParams extracts skip/limit from the request query.
// Zero is a valid value for both: skip=0 starts at the first row and
// limit=0 returns an empty window. Negative or unparseable values clamp
// to zero skip and the default limit; limits above MaxListLimit clamp
// down to it.
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip := 0
	if raw := c.Query("skip"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			skip = n
		}
	}

	limit := constants.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = constants.DefaultListLimit
	}
	if limit > constants.MaxListLimit {
		limit = constants.MaxListLimit
	}

	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}
