package wallet

import "context"

type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// Row lock held until the surrounding transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
}

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	ListByWalletID(ctx context.Context, walletID uint64) ([]Entry, error)
	ListByReference(ctx context.Context, kind ReferenceKind, referenceID string) ([]Entry, error)
}
