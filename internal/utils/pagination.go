package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	pkgutils "github.com/wso2/consent-policy-validator/pkg/utils"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// NewPaginationParams creates a new pagination params with defaults
func NewPaginationParams(limit, offset int) *PaginationParams {
	return &PaginationParams{
		Limit:  pkgutils.ValidateLimit(limit),
		Offset: pkgutils.ValidateOffset(offset),
	}
}

// ParsePaginationParams reads the limit and offset query parameters.
// Missing values fall back to defaults; non-numeric values are rejected.
func ParsePaginationParams(c *gin.Context) (*PaginationParams, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return nil, err
	}
	return NewPaginationParams(limit, offset), nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

