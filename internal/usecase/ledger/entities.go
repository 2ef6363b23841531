package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferInput struct {
	FromUserID  string
	ToUserID    string
	Amount      decimal.Decimal
	Kind        string
	ReferenceID string
	Description string
}

type MovementInput struct {
	UserID      string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type WalletDTO struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type EntryDTO struct {
	EntryID       string          `json:"entry_id"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	ReferenceKind string          `json:"reference_kind"`
	ReferenceID   string          `json:"reference_id"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatementDTO is a wallet's full entry history. Reconciled is false when
// the stored balance no longer matches the net of its entries.
type StatementDTO struct {
	UserID     string          `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	Net        decimal.Decimal `json:"net"`
	Reconciled bool            `json:"reconciled"`
	Entries    []EntryDTO      `json:"entries"`
}
