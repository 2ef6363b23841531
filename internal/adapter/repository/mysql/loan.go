package mysql

import (
	"context"

	loanDomain "p2p-lending-ledger/internal/domain/loan"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := forUpdate(r.db.WithContext(ctx)).
		Where("application_id = ?", applicationID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ApplicationRepository) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status = ?", borrowerID, loanDomain.StatusPending).
		Order("created_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
