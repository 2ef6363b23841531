package kyc

import "context"

// EligibilityChecker answers whether a user has cleared KYC and may borrow.
// The verification workflow itself lives outside this service.
type EligibilityChecker interface {
	IsEligible(ctx context.Context, userID string) (bool, error)
}

// Registry is the write side used by the KYC workflow hook.
type Registry interface {
	EligibilityChecker
	SetEligible(ctx context.Context, userID string, eligible bool) error
}
