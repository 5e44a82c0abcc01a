package http

import (
	"net/http"

	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/usecase/report"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	uc  *report.Usecase
	log *zap.Logger
}

func NewDashboardHandler(uc *report.Usecase, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: logger.OrNop(log)}
}

func (h *DashboardHandler) Get(c echo.Context) error {
	dto, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
