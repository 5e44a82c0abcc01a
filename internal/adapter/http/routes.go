package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes bundles every handler the API mounts.
type Routes struct {
	Health       *Handler
	Products     *ProductHandler
	Clients      *ClientHandler
	Applications *ApplicationHandler
	Loans        *LoanHandler
	Dashboard    *DashboardHandler
}

// Register mounts /health and /metrics publicly and everything else behind
// mws, which in production are JWT auth followed by idempotency.
func (r Routes) Register(e *echo.Echo, mws ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("", mws...)

	g.POST("/products", r.Products.Create)
	g.GET("/products", r.Products.List)
	g.GET("/products/:product_id", r.Products.Get)
	g.PUT("/products/:product_id", r.Products.Update)

	g.POST("/clients", r.Clients.Register)
	g.GET("/clients", r.Clients.List)
	g.GET("/clients/:client_id", r.Clients.Get)
	g.PATCH("/clients/:client_id/status", r.Clients.SetStatus)

	g.POST("/applications", r.Applications.Submit)
	g.GET("/applications", r.Applications.List)
	g.GET("/applications/:application_id", r.Applications.Get)
	g.PUT("/applications/:application_id", r.Applications.Update)
	g.POST("/applications/:application_id/approve", r.Applications.Approve)
	g.POST("/applications/:application_id/reject", r.Applications.Reject)
	g.POST("/applications/:application_id/disburse", r.Applications.Disburse)

	g.GET("/loans", r.Loans.List)
	g.GET("/loans/:loan_id", r.Loans.Get)
	g.GET("/loans/:loan_id/statement", r.Loans.Statement)
	g.POST("/loans/:loan_id/repayments", r.Loans.PostRepayment)
	g.GET("/loans/:loan_id/repayments", r.Loans.ListRepayments)

	g.GET("/dashboard", r.Dashboard.Get)
}
