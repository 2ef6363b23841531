package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "p2p-lending-ledger/internal/adapter/middleware"
)

type Handlers struct {
	Health       *Handler
	Calculator   *CalculatorHandler
	Wallets      *WalletHandler
	Applications *ApplicationHandler
	Contracts    *ContractHandler
	Credit       *CreditHandler
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Register mounts every route on e. Calculator, health and metrics are
// public; everything else requires the gateway identity headers, and
// idempotency (when non-nil) guards the mutating calls.
func Register(e *echo.Echo, h Handlers, idempotency echo.MiddlewareFunc) {
	e.Validator = NewValidator()

	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}
	calc := e.Group("/calculator")
	calc.POST("/emi", h.Calculator.EMI)
	calc.POST("/schedule", h.Calculator.Schedule)

	guarded := []echo.MiddlewareFunc{mw.Identity()}
	if idempotency != nil {
		guarded = append(guarded, idempotency)
	}
	borrower := mw.RequireRole(mw.RoleBorrower)

	wallets := e.Group("/wallets", guarded...)
	wallets.POST("", h.Wallets.Open)
	wallets.GET("/me", h.Wallets.Me)
	wallets.GET("/me/entries", h.Wallets.Statement)
	wallets.POST("/deposit", h.Wallets.Deposit)
	wallets.POST("/withdraw", h.Wallets.Withdraw)

	apps := e.Group("/applications", guarded...)
	apps.POST("", h.Applications.Create, borrower)
	apps.GET("/:application_id", h.Applications.Get)
	apps.POST("/:application_id/cancel", h.Applications.Cancel, borrower)
	apps.POST("/:application_id/approve", h.Applications.Approve, mw.RequireRole(mw.RoleReviewer))
	apps.POST("/:application_id/reject", h.Applications.Reject, mw.RequireRole(mw.RoleReviewer))
	apps.POST("/:application_id/disburse", h.Applications.Disburse, mw.RequireRole(mw.RoleLender))

	contracts := e.Group("/contracts", guarded...)
	contracts.GET("/:contract_id/schedule", h.Contracts.Schedule, mw.RequireRole(mw.RoleBorrower, mw.RoleLender))

	schedules := e.Group("/schedules", guarded...)
	schedules.POST("/:schedule_id/repay", h.Contracts.Repay, borrower)

	scores := e.Group("/credit-scores", guarded...)
	scores.GET("/me", h.Credit.Me)
}
