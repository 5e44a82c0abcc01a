package http

import (
	"net/http"

	"microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/usecase/product"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc  *product.Usecase
	log *zap.Logger
}

func NewProductHandler(uc *product.Usecase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: logger.OrNop(log)}
}

type productReq struct {
	Name               string          `json:"name"                validate:"required,max=100"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interest_rate"       validate:"dec2"`
	DurationMonths     int             `json:"duration_months"     validate:"gte=1"`
	RepaymentFrequency string          `json:"repayment_frequency" validate:"omitempty,oneofci=WEEKLY MONTHLY QUARTERLY YEARLY"`
	MaxAmount          decimal.Decimal `json:"max_amount"          validate:"decgt0,dec2"`
}

func (r productReq) input() product.ProductInput {
	return product.ProductInput{
		Name:               r.Name,
		Description:        r.Description,
		InterestRate:       r.InterestRate,
		DurationMonths:     r.DurationMonths,
		RepaymentFrequency: r.RepaymentFrequency,
		MaxAmount:          r.MaxAmount,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), req.input(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProductHandler) Get(c echo.Context) error {
	productID, ok, err := pathParam(c, "product_id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) Update(c echo.Context) error {
	productID, ok, err := pathParam(c, "product_id")
	if !ok {
		return err
	}
	var req productReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), productID, req.input(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
