package mysql

import (
	"context"
	"time"

	scheduleDomain "p2p-lending-ledger/internal/domain/schedule"

	"gorm.io/gorm"
)

const scheduleBatchSize = 100

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) CreateBatch(ctx context.Context, rows []scheduleDomain.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, scheduleBatchSize).Error
}

func (r *ScheduleRepository) Save(ctx context.Context, row *scheduleDomain.Row) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *ScheduleRepository) GetByScheduleID(ctx context.Context, scheduleID string) (*scheduleDomain.Row, error) {
	var out scheduleDomain.Row
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ScheduleRepository) GetByScheduleIDForUpdate(ctx context.Context, scheduleID string) (*scheduleDomain.Row, error) {
	var out scheduleDomain.Row
	res := forUpdate(r.db.WithContext(ctx)).
		Where("schedule_id = ?", scheduleID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ScheduleRepository) ListByContractID(ctx context.Context, contractID uint64) ([]scheduleDomain.Row, error) {
	var out []scheduleDomain.Row
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("installment_no ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleRepository) CountUnpaid(ctx context.Context, contractID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&scheduleDomain.Row{}).
		Where("contract_id = ? AND status <> ?", contractID, scheduleDomain.StatusPaid).
		Count(&n).Error
	return n, err
}

func (r *ScheduleRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&scheduleDomain.Row{}).
		Where("status = ? AND due_date < ?", scheduleDomain.StatusPending, now.UTC()).
		Update("status", scheduleDomain.StatusOverdue)
	return res.RowsAffected, res.Error
}

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, t *scheduleDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RepaymentRepository) GetByScheduleID(ctx context.Context, scheduleID uint64) (*scheduleDomain.Transaction, error) {
	var out scheduleDomain.Transaction
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
