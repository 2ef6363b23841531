package review

import "time"

type ReviewInput struct {
	ReviewerID    string
	ApplicationID string
	// Reason is required for rejections and ignored for approvals.
	Reason string
}

type ReviewDTO struct {
	ApplicationID   string    `json:"application_id"`
	Status          string    `json:"status"`
	ReviewerID      string    `json:"reviewer_id"`
	ReviewedAt      time.Time `json:"reviewed_at"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
}
