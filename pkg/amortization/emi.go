// Package amortization holds the pure reducing-balance loan math: the
// equated monthly installment and the per-period schedule derived from it.
// All amounts are decimal; nothing here touches float64.
package amortization

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositivePrincipal = errors.New("principal must be greater than zero")
	ErrNegativeRate         = errors.New("annual rate must not be negative")
	ErrInvalidTerm          = errors.New("term must be at least one month")
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// MonthlyRate converts an annual percentage (12 = 12%) into the per-month
// fraction used by the schedule (0.01).
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(twelve).Div(hundred)
}

// Validate checks the inputs shared by EMI and Schedule.
func Validate(principal, annualRate decimal.Decimal, termMonths int) error {
	switch {
	case !principal.IsPositive():
		return ErrNonPositivePrincipal
	case annualRate.IsNegative():
		return ErrNegativeRate
	case termMonths < 1:
		return ErrInvalidTerm
	}
	return nil
}

// EMI returns the fixed periodic payment rounded half-up to 2 decimals.
//
//	i == 0:  P / n
//	else:    P * i * (1+i)^n / ((1+i)^n - 1)
func EMI(principal, annualRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := Validate(principal, annualRate, termMonths); err != nil {
		return decimal.Zero, err
	}
	return emi(principal, MonthlyRate(annualRate), termMonths), nil
}

func emi(principal, monthly decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	if monthly.IsZero() {
		return principal.Div(n).Round(2)
	}
	factor := decimal.NewFromInt(1).Add(monthly).Pow(n)
	return principal.Mul(monthly).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1))).Round(2)
}
