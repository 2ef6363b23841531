package kycmock

import (
	"context"

	"p2p-lending-ledger/internal/domain/kyc"
)

var _ kyc.EligibilityChecker = (*Checker)(nil)

// Checker is a function-backed kyc.EligibilityChecker; with no func set every
// user is eligible.
type Checker struct {
	IsEligibleFn func(ctx context.Context, userID string) (bool, error)
}

func (m *Checker) IsEligible(ctx context.Context, userID string) (bool, error) {
	if m.IsEligibleFn != nil {
		return m.IsEligibleFn(ctx, userID)
	}
	return true, nil
}

// Only returns a checker that accepts exactly the given users.
func Only(userIDs ...string) *Checker {
	allowed := make(map[string]bool, len(userIDs))
	for _, u := range userIDs {
		allowed[u] = true
	}
	return &Checker{IsEligibleFn: func(_ context.Context, userID string) (bool, error) {
		return allowed[userID], nil
	}}
}
