package credit

import (
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/errs"
)

var ErrNotFound = fmt.Errorf("credit score %w", errs.ErrNotFound)

const (
	BaseScore = 600
	MinScore  = 300
	MaxScore  = 850
)

// Table: credit_scores
type Score struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID          string    `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_credit_scores_user_id" json:"user_id"`
	Score           int       `gorm:"column:score;not null" json:"score"`
	TotalLoansTaken int       `gorm:"column:total_loans_taken;not null" json:"total_loans_taken"`
	OnTimePayments  int       `gorm:"column:on_time_payments;not null" json:"on_time_payments"`
	LatePayments    int       `gorm:"column:late_payments;not null" json:"late_payments"`
	DefaultsCount   int       `gorm:"column:defaults_count;not null" json:"defaults_count"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Score) TableName() string { return "credit_scores" }

// NewScore is the record a user starts with at onboarding.
func NewScore(userID string) *Score {
	return &Score{UserID: userID, Score: BaseScore}
}

// Compute is the scoring formula, always evaluated from the counters:
// clamp(600 + 10*onTime - 20*late - 50*defaults, 300, 850).
func Compute(onTime, late, defaults int) int {
	s := BaseScore + 10*onTime - 20*late - 50*defaults
	switch {
	case s < MinScore:
		return MinScore
	case s > MaxScore:
		return MaxScore
	}
	return s
}
