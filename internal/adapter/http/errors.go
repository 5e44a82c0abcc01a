package http

import (
	"errors"
	"net/http"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeError renders a use case error. Validation errors carry the
// offending field in details; unclassified errors are logged and hidden.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		resp := ErrorResponse{Error: "validation failed"}
		var ae *apperr.Error
		if errors.As(err, &ae) {
			resp.Details = []FieldError{{Field: ae.Field, Message: ae.Msg}}
		} else {
			resp.Details = []FieldError{{Field: "_", Message: err.Error()}}
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	case apperr.ErrNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperr.ErrConflict, apperr.ErrConsistency:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
