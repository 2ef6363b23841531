package ledger

import (
	"context"
	"errors"
	"sort"

	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Posting describes one side of a ledger movement.
type Posting struct {
	Kind        wallet.ReferenceKind
	ReferenceID string
	Description string
}

// LockWallets row-locks the wallets of userIDs in ascending user id order, so
// two transactions touching the same pair never wait on each other in
// opposite order. Duplicate and empty ids are ignored.
func LockWallets(ctx context.Context, r uow.Repos, userIDs ...string) (map[string]*wallet.Wallet, error) {
	ids := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, u := range userIDs {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		ids = append(ids, u)
	}
	sort.Strings(ids)

	out := make(map[string]*wallet.Wallet, len(ids))
	for _, u := range ids {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, u)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, wallet.ErrNotFound
			}
			return nil, err
		}
		out[u] = w
	}
	return out, nil
}

// Debit removes amount from a wallet already locked by the caller and appends
// the matching entry.
func Debit(ctx context.Context, r uow.Repos, w *wallet.Wallet, amount decimal.Decimal, p Posting) error {
	if !amount.IsPositive() {
		return wallet.ErrInvalidAmount
	}
	if w.Balance.LessThan(amount) {
		return wallet.ErrInsufficientFunds
	}
	return post(ctx, r, w, wallet.Debit, amount, p)
}

// Credit adds amount to a wallet already locked by the caller and appends the
// matching entry.
func Credit(ctx context.Context, r uow.Repos, w *wallet.Wallet, amount decimal.Decimal, p Posting) error {
	if !amount.IsPositive() {
		return wallet.ErrInvalidAmount
	}
	return post(ctx, r, w, wallet.Credit, amount, p)
}

func post(ctx context.Context, r uow.Repos, w *wallet.Wallet, dir wallet.Direction, amount decimal.Decimal, p Posting) error {
	if dir == wallet.Debit {
		w.Balance = w.Balance.Sub(amount)
	} else {
		w.Balance = w.Balance.Add(amount)
	}
	if err := r.Wallets.Save(ctx, w); err != nil {
		return err
	}
	return r.Entries.Create(ctx, &wallet.Entry{
		EntryID:       id.NewID32(),
		WalletID:      w.ID,
		Direction:     dir,
		Amount:        amount,
		ReferenceKind: p.Kind,
		ReferenceID:   p.ReferenceID,
		Description:   p.Description,
	})
}

// Transfer moves amount between two users inside the caller's transaction:
// both wallets locked, one debit entry and one credit entry under the same
// reference.
func Transfer(ctx context.Context, r uow.Repos, fromUserID, toUserID string, amount decimal.Decimal, p Posting) error {
	if !amount.IsPositive() {
		return wallet.ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return wallet.ErrSameWallet
	}
	ws, err := LockWallets(ctx, r, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if err := Debit(ctx, r, ws[fromUserID], amount, p); err != nil {
		return err
	}
	return Credit(ctx, r, ws[toUserID], amount, p)
}
