package schedule

import (
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = fmt.Errorf("schedule row %w", errs.ErrNotFound)
	ErrAlreadyPaid   = fmt.Errorf("schedule row already paid: %w", errs.ErrInvalidState)
	ErrNotBorrower   = fmt.Errorf("caller is not the borrower of record: %w", errs.ErrUnauthorized)
	ErrInvalidAmount = fmt.Errorf("repayment amount must be greater than zero: %w", errs.ErrInvalidInput)
	ErrUnderpayment  = fmt.Errorf("repayment amount below amount due: %w", errs.ErrInvalidInput)
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
	StatusPaid    Status = "PAID"
	StatusPartial Status = "PARTIAL"
)

// Table: repayment_schedules. Rows are written in bulk at disbursement and
// each row moves to PAID at most once.
type Row struct {
	ID            uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ScheduleID    string           `gorm:"column:schedule_id;type:char(32);not null;uniqueIndex:ux_repayment_schedules_schedule_id" json:"schedule_id"`
	ContractID    uint64           `gorm:"column:contract_id;not null;uniqueIndex:ux_repayment_schedules_contract_installment,priority:1" json:"-"`
	InstallmentNo int              `gorm:"column:installment_no;not null;uniqueIndex:ux_repayment_schedules_contract_installment,priority:2" json:"installment_no"`
	DueDate       time.Time        `gorm:"column:due_date;not null;index:idx_repayment_schedules_status_due,priority:2" json:"due_date"`
	AmountDue     decimal.Decimal  `gorm:"column:amount_due;type:decimal(18,2);not null" json:"amount_due"`
	Principal     decimal.Decimal  `gorm:"column:principal_component;type:decimal(18,2);not null" json:"principal_component"`
	Interest      decimal.Decimal  `gorm:"column:interest_component;type:decimal(18,2);not null" json:"interest_component"`
	Status        Status           `gorm:"column:status;size:16;not null;index:idx_repayment_schedules_status_due,priority:1" json:"status"`
	LateFee       *decimal.Decimal `gorm:"column:late_fee;type:decimal(18,2)" json:"late_fee,omitempty"`
	PaidOn        *time.Time       `gorm:"column:paid_on" json:"paid_on,omitempty"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Row) TableName() string { return "repayment_schedules" }

// Unpaid reports whether the row still counts against contract closure.
func (r Row) Unpaid() bool { return r.Status != StatusPaid }

// Table: repayment_transactions. One per paid row, immutable.
type Transaction struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string          `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_repayment_transactions_transaction_id" json:"transaction_id"`
	ScheduleID    uint64          `gorm:"column:schedule_id;not null;uniqueIndex:ux_repayment_transactions_schedule" json:"-"`
	AmountPaid    decimal.Decimal `gorm:"column:amount_paid;type:decimal(18,2);not null" json:"amount_paid"`
	LateFee       decimal.Decimal `gorm:"column:late_fee;type:decimal(18,2);not null" json:"late_fee"`
	PaidAt        time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "repayment_transactions" }
