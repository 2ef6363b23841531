package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/usecase/contract"
	"p2p-lending-ledger/internal/usecase/creditscore"
	"p2p-lending-ledger/internal/usecase/repayment"
)

type ContractHandler struct {
	contracts *contract.Usecase
	repay     *repayment.Usecase
}

func NewContractHandler(contracts *contract.Usecase, repay *repayment.Usecase) *ContractHandler {
	return &ContractHandler{contracts: contracts, repay: repay}
}

type repayReq struct {
	Amount string `json:"amount" validate:"required,decimal,dec2,positive"`
}

// Schedule is visible to the contract's borrower and lender only.
func (h *ContractHandler) Schedule(c echo.Context) error {
	contractID, ok := pathID(c, "contract_id")
	if !ok {
		return badRequest(c, "invalid contract_id path param")
	}
	dto, err := h.contracts.Schedule(c.Request().Context(), middleware.UserID(c), contractID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Repay(c echo.Context) error {
	scheduleID, ok := pathID(c, "schedule_id")
	if !ok {
		return badRequest(c, "invalid schedule_id path param")
	}
	var req repayReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	amount, _ := decimal.NewFromString(req.Amount)
	dto, err := h.repay.Repay(c.Request().Context(), repayment.RepayInput{
		BorrowerID: middleware.UserID(c),
		ScheduleID: scheduleID,
		Amount:     amount,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type CreditHandler struct{ uc *creditscore.Usecase }

func NewCreditHandler(uc *creditscore.Usecase) *CreditHandler { return &CreditHandler{uc: uc} }

func (h *CreditHandler) Me(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
