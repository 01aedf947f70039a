package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parseIDParam parses a numeric path parameter into a uint ID
func parseIDParam(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(value), nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}
	return value
}

// parsePagination reads offset/limit query params with a clamped limit
func parsePagination(c echo.Context) (offset, limit int) {
	offset = getIntParam(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit = getIntParam(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}
