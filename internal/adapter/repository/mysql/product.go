package mysql

import (
	"context"

	loanDomain "p2p-lending-ledger/internal/domain/loan"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *loanDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*loanDomain.Product, error) {
	var out loanDomain.Product
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Product, error) {
	var out loanDomain.Product
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
