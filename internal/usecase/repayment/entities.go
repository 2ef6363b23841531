package repayment

import (
	"time"

	"p2p-lending-ledger/internal/usecase/contract"

	"github.com/shopspring/decimal"
)

type RepayInput struct {
	BorrowerID string          `json:"-"`
	ScheduleID string          `json:"-"`
	Amount     decimal.Decimal `json:"amount"`
}

type RepayDTO struct {
	TransactionID  string                  `json:"transaction_id"`
	Row            contract.ScheduleRowDTO `json:"row"`
	AmountPaid     decimal.Decimal         `json:"amount_paid"`
	LateFee        decimal.Decimal         `json:"late_fee"`
	TotalDebited   decimal.Decimal         `json:"total_debited"`
	Late           bool                    `json:"late"`
	ContractStatus string                  `json:"contract_status"`
	PaidAt         time.Time               `json:"paid_at"`
	// Score is nil when the post-commit recalculation failed.
	Score *int `json:"credit_score,omitempty"`
}
