package creditscore

import "time"

type ScoreDTO struct {
	UserID          string    `json:"user_id"`
	Score           int       `json:"score"`
	TotalLoansTaken int       `json:"total_loans_taken"`
	OnTimePayments  int       `json:"on_time_payments"`
	LatePayments    int       `json:"late_payments"`
	DefaultsCount   int       `json:"defaults_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Counter names one of the cumulative score inputs.
type Counter int

const (
	LoansTaken Counter = iota
	OnTimePayment
	LatePayment
	Default
)
