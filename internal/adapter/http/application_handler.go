package http

import (
	"context"
	"net/http"

	"microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/usecase/application"
	"microfinance-backoffice/internal/usecase/disbursement"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ApplicationHandler serves the application workflow, including the
// disbursement that turns an approved application into a loan.
type ApplicationHandler struct {
	apps     *application.Usecase
	disburse *disbursement.Usecase
	log      *zap.Logger
}

func NewApplicationHandler(apps *application.Usecase, disburse *disbursement.Usecase, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, disburse: disburse, log: logger.OrNop(log)}
}

type submitApplicationReq struct {
	ClientID        string          `json:"client_id"        validate:"required,hex32"`
	ProductID       string          `json:"product_id"       validate:"required,hex32"`
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"decgt0,dec2"`
	Remarks         string          `json:"remarks"`
}

type updateApplicationReq struct {
	ProductID       string          `json:"product_id"       validate:"omitempty,hex32"`
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"decgt0,dec2"`
	Remarks         string          `json:"remarks"`
}

type decisionReq struct {
	Remarks string `json:"remarks"`
}

type disburseReq struct {
	DisbursedAmount  decimal.Decimal `json:"disbursed_amount"  validate:"decgt0,dec2"`
	DisbursementDate string          `json:"disbursement_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.apps.Submit(c.Request().Context(), application.SubmitInput(req), middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	applicationID, ok, err := pathParam(c, "application_id")
	if !ok {
		return err
	}
	dto, err := h.apps.Get(c.Request().Context(), applicationID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Update edits a pending application's product, amount and remarks.
func (h *ApplicationHandler) Update(c echo.Context) error {
	applicationID, ok, err := pathParam(c, "application_id")
	if !ok {
		return err
	}
	var req updateApplicationReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in := application.UpdateInput{
		ApplicationID:   applicationID,
		ProductID:       req.ProductID,
		AmountRequested: req.AmountRequested,
		Remarks:         req.Remarks,
	}
	dto, err := h.apps.Update(c.Request().Context(), in, middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List accepts an optional ?status= filter.
func (h *ApplicationHandler) List(c echo.Context) error {
	list, err := h.apps.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	return h.decide(c, h.apps.Approve)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	return h.decide(c, h.apps.Reject)
}

type decideFunc = func(ctx context.Context, in application.DecisionInput, actor string) (*application.ApplicationDTO, error)

func (h *ApplicationHandler) decide(c echo.Context, fn decideFunc) error {
	applicationID, ok, err := pathParam(c, "application_id")
	if !ok {
		return err
	}
	var req decisionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in := application.DecisionInput{ApplicationID: applicationID, Remarks: req.Remarks}
	dto, err := fn(c.Request().Context(), in, middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Disburse(c echo.Context) error {
	applicationID, ok, err := pathParam(c, "application_id")
	if !ok {
		return err
	}
	var req disburseReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in := disbursement.DisburseInput{
		ApplicationID:    applicationID,
		DisbursedAmount:  req.DisbursedAmount,
		DisbursementDate: parseDate(req.DisbursementDate),
	}
	dto, err := h.disburse.Disburse(c.Request().Context(), in, middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
