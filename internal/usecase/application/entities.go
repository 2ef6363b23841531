package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	BorrowerID string          `json:"-"`
	ProductID  string          `json:"product_id"`
	Amount     decimal.Decimal `json:"amount"`
	Purpose    *string         `json:"purpose,omitempty"`
}

type ApplicationDTO struct {
	ApplicationID   string          `json:"application_id"`
	BorrowerID      string          `json:"borrower_id"`
	ProductID       string          `json:"product_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Purpose         *string         `json:"purpose,omitempty"`
	Status          string          `json:"status"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	ReviewerID      *string         `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
