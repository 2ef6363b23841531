package mysql

import (
	"context"

	loanDomain "p2p-lending-ledger/internal/domain/loan"

	"gorm.io/gorm"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *loanDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *loanDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Contract, error) {
	var out loanDomain.Contract
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*loanDomain.Contract, error) {
	var out loanDomain.Contract
	if err := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContractRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*loanDomain.Contract, error) {
	var out loanDomain.Contract
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
