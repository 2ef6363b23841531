package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/usecase/ledger"
)

type WalletHandler struct{ uc *ledger.Usecase }

func NewWalletHandler(uc *ledger.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type movementReq struct {
	Amount      string `json:"amount"      validate:"required,decimal,dec2,positive"`
	Description string `json:"description" validate:"max=255"`
}

// Open is the onboarding hook: it creates the caller's wallet and credit
// score if they do not exist yet.
func (h *WalletHandler) Open(c echo.Context) error {
	dto, err := h.uc.Open(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WalletHandler) Me(c echo.Context) error {
	dto, err := h.uc.Balance(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Statement(c echo.Context) error {
	dto, err := h.uc.Entries(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	return h.move(c, h.uc.Deposit)
}

func (h *WalletHandler) Withdraw(c echo.Context) error {
	return h.move(c, h.uc.Withdraw)
}

func (h *WalletHandler) move(c echo.Context, op func(ctx context.Context, in ledger.MovementInput) (*ledger.WalletDTO, error)) error {
	var req movementReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	amount, _ := decimal.NewFromString(req.Amount)
	dto, err := op(c.Request().Context(), ledger.MovementInput{
		UserID:      middleware.UserID(c),
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
