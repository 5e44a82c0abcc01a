package http

import (
	"net/http"

	"microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/usecase/disbursement"
	"microfinance-backoffice/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LoanHandler struct {
	loans      *disbursement.Usecase
	repayments *repayment.Usecase
	log        *zap.Logger
}

func NewLoanHandler(loans *disbursement.Usecase, repayments *repayment.Usecase, log *zap.Logger) *LoanHandler {
	return &LoanHandler{loans: loans, repayments: repayments, log: logger.OrNop(log)}
}

type postRepaymentReq struct {
	Amount      decimal.Decimal `json:"amount"       validate:"decgt0,dec2"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Method      string          `json:"method"       validate:"omitempty,oneofci=CASH MOBILE BANK"`
}

// List accepts an optional ?status= filter.
func (h *LoanHandler) List(c echo.Context) error {
	list, err := h.loans.ListLoans(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID, ok, err := pathParam(c, "loan_id")
	if !ok {
		return err
	}
	dto, err := h.loans.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Statement(c echo.Context) error {
	loanID, ok, err := pathParam(c, "loan_id")
	if !ok {
		return err
	}
	dto, err := h.repayments.Statement(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) PostRepayment(c echo.Context) error {
	loanID, ok, err := pathParam(c, "loan_id")
	if !ok {
		return err
	}
	var req postRepaymentReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in := repayment.PostInput{
		LoanID:      loanID,
		Amount:      req.Amount,
		PaymentDate: parseDate(req.PaymentDate),
		Method:      req.Method,
	}
	dto, err := h.repayments.Post(c.Request().Context(), in, middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListRepayments(c echo.Context) error {
	loanID, ok, err := pathParam(c, "loan_id")
	if !ok {
		return err
	}
	list, err := h.repayments.ListByLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}
