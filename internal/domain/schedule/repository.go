package schedule

import (
	"context"
	"time"
)

type Repository interface {
	CreateBatch(ctx context.Context, rows []Row) error
	Save(ctx context.Context, r *Row) error
	GetByScheduleID(ctx context.Context, scheduleID string) (*Row, error)
	// Row lock held until the surrounding transaction ends.
	GetByScheduleIDForUpdate(ctx context.Context, scheduleID string) (*Row, error)
	ListByContractID(ctx context.Context, contractID uint64) ([]Row, error)
	CountUnpaid(ctx context.Context, contractID uint64) (int64, error)
	// MarkOverdue flips PENDING rows due strictly before now to OVERDUE.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByScheduleID(ctx context.Context, scheduleID uint64) (*Transaction, error)
}
