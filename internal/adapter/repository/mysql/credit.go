package mysql

import (
	"context"

	creditDomain "p2p-lending-ledger/internal/domain/credit"

	"gorm.io/gorm"
)

type CreditScoreRepository struct{ db *gorm.DB }

func NewCreditScoreRepository(db *gorm.DB) *CreditScoreRepository {
	return &CreditScoreRepository{db: db}
}

func (r *CreditScoreRepository) Create(ctx context.Context, s *creditDomain.Score) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CreditScoreRepository) GetByUserID(ctx context.Context, userID string) (*creditDomain.Score, error) {
	var out creditDomain.Score
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CreditScoreRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*creditDomain.Score, error) {
	var out creditDomain.Score
	if err := forUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CreditScoreRepository) Save(ctx context.Context, s *creditDomain.Score) error {
	return r.db.WithContext(ctx).Save(s).Error
}
