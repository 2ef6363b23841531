package wallet

import (
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = fmt.Errorf("wallet %w", errs.ErrNotFound)
	ErrInsufficientFunds = fmt.Errorf("wallet balance too low: %w", errs.ErrInsufficientFunds)
	ErrInvalidAmount     = fmt.Errorf("amount must be greater than zero: %w", errs.ErrInvalidInput)
	ErrSameWallet        = fmt.Errorf("source and destination wallet are the same: %w", errs.ErrInvalidInput)
)

// Table: wallets. One per user; balance only moves through ledger entries.
type Wallet struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string          `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_wallets_user_id" json:"user_id"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null" json:"balance"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

type ReferenceKind string

const (
	RefDisbursement ReferenceKind = "disbursement"
	RefRepayment    ReferenceKind = "repayment"
	RefDeposit      ReferenceKind = "deposit"
	RefWithdrawal   ReferenceKind = "withdrawal"
)

// Table: ledger_entries. Append-only; Amount is always positive and
// Direction carries the sign.
type Entry struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntryID       string          `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_ledger_entries_entry_id" json:"entry_id"`
	WalletID      uint64          `gorm:"column:wallet_id;not null;index:idx_ledger_entries_wallet" json:"-"`
	Direction     Direction       `gorm:"column:direction;size:8;not null" json:"direction"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ReferenceKind ReferenceKind   `gorm:"column:reference_kind;size:16;not null;index:idx_ledger_entries_reference" json:"reference_kind"`
	ReferenceID   string          `gorm:"column:reference_id;type:char(32);not null;index:idx_ledger_entries_reference" json:"reference_id"`
	Description   string          `gorm:"column:description;type:text" json:"description"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "ledger_entries" }

// Signed returns the entry's effect on the wallet balance.
func (e Entry) Signed() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}
