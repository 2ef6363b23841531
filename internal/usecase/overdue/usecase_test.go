package overdue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/testutil/fixture"
	"p2p-lending-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var base = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func seedRows(t *testing.T, f *fixture.Fixture, statuses []schedule.Status, dues []time.Time) []schedule.Row {
	t.Helper()
	ctx := context.Background()
	r := f.Repos()
	borrower, lender := f.User("0"), f.User("0")
	p := f.Product(fixture.ProductSpec{Min: "1", Max: "100000", Rate: "0", Fee: "0", Term: len(statuses)})
	app := f.Application(borrower, p, "100", loan.StatusApproved)
	c := &loan.Contract{
		ContractID: id.NewID32(), ApplicationID: app.ID, BorrowerID: borrower, LenderID: lender,
		Principal: decimal.NewFromInt(100), TermMonths: len(statuses),
		StartDate: base, EndDate: base, Status: loan.ContractActive,
	}
	require.NoError(t, r.Contracts.Create(ctx, c))

	rows := make([]schedule.Row, len(statuses))
	for i := range statuses {
		rows[i] = schedule.Row{
			ScheduleID: id.NewID32(), ContractID: c.ID, InstallmentNo: i + 1,
			DueDate: dues[i], AmountDue: decimal.NewFromInt(10), Principal: decimal.NewFromInt(10),
			Status: statuses[i],
		}
	}
	require.NoError(t, r.Schedules.CreateBatch(ctx, rows))
	return rows
}

func statusOf(t *testing.T, f *fixture.Fixture, scheduleID string) schedule.Status {
	t.Helper()
	row, err := f.Repos().Schedules.GetByScheduleID(context.Background(), scheduleID)
	require.NoError(t, err)
	return row.Status
}

func TestMarkOverdue_OnlyPendingPastDue(t *testing.T) {
	f := fixture.New(t)
	rows := seedRows(t, f,
		[]schedule.Status{schedule.StatusPending, schedule.StatusPending, schedule.StatusPaid, schedule.StatusOverdue, schedule.StatusPending},
		[]time.Time{base.Add(-48 * time.Hour), base.Add(-time.Second), base.Add(-72 * time.Hour), base.Add(-96 * time.Hour), base},
	)
	uc := NewUsecase(mysql.NewScheduleRepository(f.DB), zap.NewNop(), nil)

	n, err := uc.MarkOverdue(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, schedule.StatusOverdue, statusOf(t, f, rows[0].ScheduleID))
	assert.Equal(t, schedule.StatusOverdue, statusOf(t, f, rows[1].ScheduleID))
	assert.Equal(t, schedule.StatusPaid, statusOf(t, f, rows[2].ScheduleID))
	assert.Equal(t, schedule.StatusOverdue, statusOf(t, f, rows[3].ScheduleID))
	// due exactly at the cutoff is not yet overdue
	assert.Equal(t, schedule.StatusPending, statusOf(t, f, rows[4].ScheduleID))
}

func TestMarkOverdue_Idempotent(t *testing.T) {
	f := fixture.New(t)
	seedRows(t, f,
		[]schedule.Status{schedule.StatusPending, schedule.StatusPending},
		[]time.Time{base.Add(-time.Hour), base.Add(24 * time.Hour)},
	)
	uc := NewUsecase(mysql.NewScheduleRepository(f.DB), zap.NewNop(), nil)
	uc.now = func() time.Time { return base }

	first, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	second, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(0), second)
}

type countingRepo struct {
	schedule.Repository
	calls atomic.Int32
	err   error
}

func (c *countingRepo) MarkOverdue(context.Context, time.Time) (int64, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestMarkOverdue_PropagatesStorageError(t *testing.T) {
	boom := errors.New("lock wait timeout")
	uc := NewUsecase(&countingRepo{err: boom}, nil, nil)
	if _, err := uc.MarkOverdue(context.Background(), base); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}

func TestRun_SweepsUntilCancelled(t *testing.T) {
	repo := &countingRepo{}
	uc := NewUsecase(repo, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		uc.Run(ctx, 5*time.Millisecond, time.Second)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
