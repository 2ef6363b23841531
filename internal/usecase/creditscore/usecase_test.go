package creditscore

import (
	"context"
	"errors"
	"testing"

	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/errs"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/testutil/testdb"
	"p2p-lending-ledger/internal/testutil/uowmock"
	"p2p-lending-ledger/pkg/id"

	"go.uber.org/zap"
)

func TestCompute_Clamps(t *testing.T) {
	tests := []struct {
		onTime, late, defaults, want int
	}{
		{0, 0, 0, 600},
		{3, 1, 0, 610},
		{100, 0, 0, 850},
		{0, 0, 10, 300},
		{25, 0, 0, 850},
		{0, 15, 0, 300},
	}
	for _, tt := range tests {
		if got := credit.Compute(tt.onTime, tt.late, tt.defaults); got != tt.want {
			t.Fatalf("Compute(%d,%d,%d) = %d, want %d", tt.onTime, tt.late, tt.defaults, got, tt.want)
		}
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	gdb := testdb.Open(t)
	tx := mysql.NewGormUoW(gdb)
	u := NewUsecase(tx, zap.NewNop())
	ctx := context.Background()
	user := id.NewID32()

	err := tx.WithinTx(ctx, func(r uow.Repos) error {
		s := credit.NewScore(user)
		s.OnTimePayments = 7
		s.LatePayments = 2
		s.DefaultsCount = 1
		return r.Scores.Create(ctx, s)
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := u.Recalculate(ctx, user)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	// 600 + 70 - 40 - 50
	if first.Score != 580 {
		t.Fatalf("score = %d, want 580", first.Score)
	}
	second, err := u.Recalculate(ctx, user)
	if err != nil {
		t.Fatalf("recalculate again: %v", err)
	}
	if second.Score != first.Score {
		t.Fatalf("recalculate not idempotent: %d then %d", first.Score, second.Score)
	}

	got, err := u.Get(ctx, user)
	if err != nil || got.Score != 580 {
		t.Fatalf("get: %+v %v", got, err)
	}
}

func TestRecalculate_NotFound(t *testing.T) {
	u := NewUsecase(mysql.NewGormUoW(testdb.Open(t)), nil)
	_, err := u.Recalculate(context.Background(), id.NewID32())
	if !errors.Is(err, credit.ErrNotFound) || !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRecalculate_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error { return boom },
	}
	_, err := NewUsecase(tx, nil).Recalculate(context.Background(), "u")
	if !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}

func TestIncrement_CreatesMissingRecord(t *testing.T) {
	tx := mysql.NewGormUoW(testdb.Open(t))
	ctx := context.Background()
	user := id.NewID32()

	for _, c := range []Counter{LoansTaken, OnTimePayment, OnTimePayment, LatePayment, Default} {
		if err := tx.WithinTx(ctx, func(r uow.Repos) error { return Increment(ctx, r, user, c) }); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	got, err := NewUsecase(tx, nil).Get(ctx, user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalLoansTaken != 1 || got.OnTimePayments != 2 || got.LatePayments != 1 || got.DefaultsCount != 1 {
		t.Fatalf("counters = %+v", got)
	}
	if got.Score != credit.BaseScore {
		t.Fatalf("increment must not rescore, got %d", got.Score)
	}
}
