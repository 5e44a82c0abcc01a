package http

import (
	"net/http"

	"microfinance-backoffice/internal/adapter/middleware"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/usecase/client"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ClientHandler struct {
	uc  *client.Usecase
	log *zap.Logger
}

func NewClientHandler(uc *client.Usecase, log *zap.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, log: logger.OrNop(log)}
}

type registerClientReq struct {
	FirstName   string `json:"first_name"   validate:"required,max=100"`
	LastName    string `json:"last_name"    validate:"max=100"`
	ClientType  string `json:"client_type"  validate:"omitempty,oneofci=INDIVIDUAL GROUP"`
	NationalID  string `json:"national_id"  validate:"required,max=50"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
}

type clientStatusReq struct {
	Status string `json:"status" validate:"required,oneofci=ACTIVE INACTIVE"`
}

func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), client.RegisterInput(req), middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ClientHandler) Get(c echo.Context) error {
	clientID, ok, err := pathParam(c, "client_id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), clientID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List accepts an optional ?status= filter.
func (h *ClientHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ClientHandler) SetStatus(c echo.Context) error {
	clientID, ok, err := pathParam(c, "client_id")
	if !ok {
		return err
	}
	var req clientStatusReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SetStatus(c.Request().Context(), clientID, req.Status, middleware.ActorID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
