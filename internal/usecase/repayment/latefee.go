package repayment

import (
	"time"

	"p2p-lending-ledger/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

var DefaultDailyRate = decimal.RequireFromString("0.02")

// LateFee is charged only on rows the overdue sweep has already flagged:
// round(amount_due * dailyRate * whole days past due, 2). late reports
// whether the payment counts against the borrower, which can be true with a
// zero fee inside the first day.
func LateFee(row schedule.Row, now time.Time, dailyRate decimal.Decimal) (fee decimal.Decimal, late bool) {
	if row.Status != schedule.StatusOverdue || !now.After(row.DueDate) {
		return decimal.Zero, false
	}
	days := int64(now.Sub(row.DueDate) / (24 * time.Hour))
	return row.AmountDue.Mul(dailyRate).Mul(decimal.NewFromInt(days)).Round(2), true
}
