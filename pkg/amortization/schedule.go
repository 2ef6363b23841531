package amortization

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one generated row of a repayment plan.
type Installment struct {
	Number    int
	DueDate   time.Time
	AmountDue decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	// Balance is the outstanding principal after this installment.
	Balance decimal.Decimal
}

// Schedule builds the n-row reducing-balance plan starting one month after
// start. Due dates use time.AddDate, so a start on the 31st rolls into the
// following month when the target month is shorter (Jan 31 -> Mar 3).
//
// Rounding drift from the 2dp interest is left in place; the last row is not
// adjusted to bring the balance to exactly zero.
func Schedule(principal, annualRate decimal.Decimal, termMonths int, start time.Time) ([]Installment, error) {
	if err := Validate(principal, annualRate, termMonths); err != nil {
		return nil, err
	}

	monthly := MonthlyRate(annualRate)
	payment := emi(principal, monthly, termMonths)

	rows := make([]Installment, 0, termMonths)
	balance := principal
	for k := 1; k <= termMonths; k++ {
		interest := decimal.Zero
		if !monthly.IsZero() {
			interest = balance.Mul(monthly).Round(2)
		}
		principalPart := payment.Sub(interest)
		balance = balance.Sub(principalPart)

		rows = append(rows, Installment{
			Number:    k,
			DueDate:   start.AddDate(0, k, 0),
			AmountDue: payment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return rows, nil
}

// Totals sums principal, interest and amount due across rows.
func Totals(rows []Installment) (principal, interest, due decimal.Decimal) {
	for _, r := range rows {
		principal = principal.Add(r.Principal)
		interest = interest.Add(r.Interest)
		due = due.Add(r.AmountDue)
	}
	return principal, interest, due
}
