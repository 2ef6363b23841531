package overdue

import (
	"context"
	"time"

	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type Usecase struct {
	rows    schedule.Repository
	log     *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

func NewUsecase(rows schedule.Repository, log *zap.Logger, m *metrics.Recorder) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{rows: rows, log: log, metrics: m, now: time.Now}
}

// MarkOverdue flips every PENDING row due before now to OVERDUE in one
// statement. Re-running it for the same now changes nothing.
func (u *Usecase) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := u.rows.MarkOverdue(ctx, now.UTC())
	if err != nil {
		u.log.Error("overdue sweep failed", zap.Error(err))
		return 0, err
	}
	u.metrics.OverdueMarked(n)
	u.log.Info("overdue sweep", zap.Int64("rows_marked", n), zap.Time("cutoff", now.UTC()))
	return n, nil
}

func (u *Usecase) Sweep(ctx context.Context) (int64, error) {
	return u.MarkOverdue(ctx, u.now())
}

// Run sweeps once per interval until ctx is cancelled. Each sweep gets its
// own timeout so a stuck statement cannot stall the loop.
func (u *Usecase) Run(ctx context.Context, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sctx, cancel := context.WithTimeout(ctx, timeout)
			_, _ = u.Sweep(sctx)
			cancel()
		}
	}
}
