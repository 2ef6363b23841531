package mysql

import (
	"context"

	walletDomain "p2p-lending-ledger/internal/domain/wallet"

	"gorm.io/gorm"
)

type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) Create(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	if err := forUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *WalletRepository) Save(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

type EntryRepository struct{ db *gorm.DB }

func NewEntryRepository(db *gorm.DB) *EntryRepository { return &EntryRepository{db: db} }

func (r *EntryRepository) Create(ctx context.Context, e *walletDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EntryRepository) ListByWalletID(ctx context.Context, walletID uint64) ([]walletDomain.Entry, error) {
	var out []walletDomain.Entry
	err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *EntryRepository) ListByReference(ctx context.Context, kind walletDomain.ReferenceKind, referenceID string) ([]walletDomain.Entry, error) {
	var out []walletDomain.Entry
	err := r.db.WithContext(ctx).
		Where("reference_kind = ? AND reference_id = ?", kind, referenceID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
