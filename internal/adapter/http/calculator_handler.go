package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"p2p-lending-ledger/internal/domain/errs"
	"p2p-lending-ledger/pkg/amortization"
)

// CalculatorHandler exposes the pure EMI and schedule math. Nothing is stored.
type CalculatorHandler struct {
	now func() time.Time
}

func NewCalculatorHandler() *CalculatorHandler { return &CalculatorHandler{now: time.Now} }

type calcReq struct {
	Principal  string `json:"principal"   validate:"required,decimal,dec2"`
	AnnualRate string `json:"annual_rate" validate:"required,decimal,nonnegative"`
	TermMonths int    `json:"term_months" validate:"gte=1,lte=600"`
	// Optional first-day anchor; due dates start one month later.
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type emiResp struct {
	EMI           decimal.Decimal `json:"emi"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

type installmentResp struct {
	InstallmentNo int             `json:"installment_no"`
	DueDate       string          `json:"due_date"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Principal     decimal.Decimal `json:"principal_component"`
	Interest      decimal.Decimal `json:"interest_component"`
	Balance       decimal.Decimal `json:"remaining_balance"`
}

type scheduleResp struct {
	emiResp
	TotalPrincipal decimal.Decimal   `json:"total_principal"`
	Rows           []installmentResp `json:"rows"`
}

func (r calcReq) parse() (principal, rate decimal.Decimal) {
	principal, _ = decimal.NewFromString(r.Principal)
	rate, _ = decimal.NewFromString(r.AnnualRate)
	return principal, rate
}

func (h *CalculatorHandler) EMI(c echo.Context) error {
	var req calcReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	principal, rate := req.parse()
	emi, err := amortization.EMI(principal, rate, req.TermMonths)
	if err != nil {
		return fail(c, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))
	}
	total := emi.Mul(decimal.NewFromInt(int64(req.TermMonths)))
	return c.JSON(http.StatusOK, emiResp{
		EMI:           emi,
		TotalPayable:  total,
		TotalInterest: total.Sub(principal),
	})
}

func (h *CalculatorHandler) Schedule(c echo.Context) error {
	var req calcReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	start := h.now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		start, _ = time.Parse("2006-01-02", req.StartDate)
	}
	principal, rate := req.parse()
	rows, err := amortization.Schedule(principal, rate, req.TermMonths, start)
	if err != nil {
		return fail(c, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))
	}

	sumPrincipal, sumInterest, sumDue := amortization.Totals(rows)
	out := scheduleResp{
		emiResp: emiResp{
			EMI:           rows[0].AmountDue,
			TotalPayable:  sumDue,
			TotalInterest: sumInterest,
		},
		TotalPrincipal: sumPrincipal,
		Rows:           make([]installmentResp, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, installmentResp{
			InstallmentNo: r.Number,
			DueDate:       r.DueDate.Format("2006-01-02"),
			AmountDue:     r.AmountDue,
			Principal:     r.Principal,
			Interest:      r.Interest,
			Balance:       r.Balance,
		})
	}
	return c.JSON(http.StatusOK, out)
}
