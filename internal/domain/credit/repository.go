package credit

import "context"

type Repository interface {
	Create(ctx context.Context, s *Score) error
	GetByUserID(ctx context.Context, userID string) (*Score, error)
	// Row lock held until the surrounding transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Score, error)
	Save(ctx context.Context, s *Score) error
}
