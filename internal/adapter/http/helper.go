package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// bind decodes and validates the request body into req. When it returns
// false the error response has already been written.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// pathParam returns the named path parameter, writing a 400 when it is empty.
func pathParam(c echo.Context, name string) (string, bool, error) {
	v := c.Param(name)
	if v == "" {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
	}
	return v, true, nil
}

// parseDate reads an optional YYYY-MM-DD value; empty yields the zero time.
// The format itself is checked by the datetime validator tag.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.ParseInLocation(time.DateOnly, s, time.UTC)
	return t
}
