package amortization

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func TestSchedule_RowCountNumberingAndDates(t *testing.T) {
	for _, n := range []int{1, 6, 12, 24} {
		rows, err := Schedule(dec("50000"), dec("18"), n, start)
		require.NoError(t, err)
		require.Len(t, rows, n)
		for k, r := range rows {
			assert.Equal(t, k+1, r.Number)
			assert.Equal(t, start.AddDate(0, k+1, 0), r.DueDate)
			if k > 0 {
				assert.False(t, r.DueDate.Before(rows[k-1].DueDate))
			}
		}
	}
}

func TestSchedule_FirstRowValues(t *testing.T) {
	rows, err := Schedule(dec("100000"), dec("12"), 12, start)
	require.NoError(t, err)

	first := rows[0]
	assert.True(t, first.AmountDue.Equal(dec("8884.88")))
	assert.True(t, first.Interest.Equal(dec("1000")), "interest %s", first.Interest)
	assert.True(t, first.Principal.Equal(dec("7884.88")), "principal %s", first.Principal)
	assert.True(t, first.Balance.Equal(dec("92115.12")), "balance %s", first.Balance)
}

func TestSchedule_ReducingBalanceAndConstantPayment(t *testing.T) {
	cases := []struct {
		p, r string
		n    int
	}{
		{"100000", "12", 12},
		{"250000", "10.5", 36},
		{"1500", "24", 6},
		{"999999.99", "3.75", 60},
	}
	for _, c := range cases {
		rows, err := Schedule(dec(c.p), dec(c.r), c.n, start)
		require.NoError(t, err)
		for k := 1; k < len(rows); k++ {
			assert.True(t, rows[k].AmountDue.Equal(rows[0].AmountDue), "amount due differs at row %d", k+1)
			assert.True(t, rows[k-1].Interest.GreaterThanOrEqual(rows[k].Interest),
				"interest grew at row %d: %s -> %s", k+1, rows[k-1].Interest, rows[k].Interest)
			assert.True(t, rows[k-1].Principal.LessThanOrEqual(rows[k].Principal),
				"principal shrank at row %d: %s -> %s", k+1, rows[k-1].Principal, rows[k].Principal)
		}
	}
}

func TestSchedule_SumsWithinTolerance(t *testing.T) {
	p := dec("100000")
	rows, err := Schedule(p, dec("12"), 12, start)
	require.NoError(t, err)

	principal, interest, due := Totals(rows)
	assert.True(t, due.Equal(principal.Add(interest)), "due %s != principal %s + interest %s", due, principal, interest)

	drift := principal.Sub(p).Abs()
	assert.True(t, drift.LessThanOrEqual(p.Mul(dec("0.01"))), "principal drift %s exceeds 1%%", drift)
}

func TestSchedule_ZeroRate(t *testing.T) {
	rows, err := Schedule(dec("10000"), decimal.Zero, 12, start)
	require.NoError(t, err)
	for _, r := range rows {
		assert.True(t, r.Interest.IsZero())
		assert.True(t, r.Principal.Equal(dec("833.33")))
		assert.True(t, r.AmountDue.Equal(dec("833.33")))
	}
	principal, _, _ := Totals(rows)
	assert.True(t, principal.Equal(dec("9999.96")))
}

func TestSchedule_MonthEndOverflow(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, err := Schedule(dec("3000"), dec("12"), 3, jan31)
	require.NoError(t, err)

	// 2025-02-31 normalises to 2025-03-03
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), rows[1].DueDate)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), rows[2].DueDate)
}

func TestSchedule_InvalidInput(t *testing.T) {
	_, err := Schedule(dec("-1"), dec("12"), 12, start)
	assert.ErrorIs(t, err, ErrNonPositivePrincipal)
	_, err = Schedule(dec("1000"), dec("12"), 0, start)
	assert.ErrorIs(t, err, ErrInvalidTerm)
}
