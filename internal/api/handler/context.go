package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/middleware"
	"github.com/cars-g/reporting-api/internal/core/domain"
)

// callerOf returns the caller injected by the Auth middleware. A missing
// caller means the route was registered without it.
func callerOf(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.ID == "" {
		return domain.Caller{}, fmt.Errorf("%w: missing authentication claims", domain.ErrUnauthorized)
	}
	return caller, nil
}

// bind decodes the request body into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	return c.Validate(req)
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, name)
	}
	return n, nil
}

// messageResponse is the body of mutations that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}
