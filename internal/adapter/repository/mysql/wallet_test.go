package mysql

import (
	"context"
	"errors"
	"testing"

	creditDomain "p2p-lending-ledger/internal/domain/credit"
	walletDomain "p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/internal/testutil/testdb"
	"p2p-lending-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestWallet_UniquePerUser(t *testing.T) {
	db := testdb.Open(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	user := id.NewID32()
	if err := repo.Create(ctx, &walletDomain.Wallet{UserID: user, Balance: decimal.Zero}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, &walletDomain.Wallet{UserID: user, Balance: decimal.Zero}); err == nil {
		t.Fatalf("expected unique violation for a second wallet")
	}

	w, err := repo.GetByUserIDForUpdate(ctx, user)
	if err != nil {
		t.Fatalf("GetByUserIDForUpdate: %v", err)
	}
	w.Balance = decimal.RequireFromString("150.25")
	if err := repo.Save(ctx, w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, user)
	if !got.Balance.Equal(decimal.RequireFromString("150.25")) {
		t.Fatalf("balance = %s", got.Balance)
	}

	if _, err := repo.GetByUserID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEntry_ListByWalletAndReference(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	wallets := NewWalletRepository(db)
	entries := NewEntryRepository(db)

	from := &walletDomain.Wallet{UserID: id.NewID32()}
	to := &walletDomain.Wallet{UserID: id.NewID32()}
	for _, w := range []*walletDomain.Wallet{from, to} {
		if err := wallets.Create(ctx, w); err != nil {
			t.Fatalf("Create wallet: %v", err)
		}
	}

	ref := id.NewID32()
	amt := decimal.RequireFromString("1066.19")
	for _, e := range []*walletDomain.Entry{
		{EntryID: id.NewID32(), WalletID: from.ID, Direction: walletDomain.Debit, Amount: amt, ReferenceKind: walletDomain.RefRepayment, ReferenceID: ref},
		{EntryID: id.NewID32(), WalletID: to.ID, Direction: walletDomain.Credit, Amount: amt, ReferenceKind: walletDomain.RefRepayment, ReferenceID: ref},
		{EntryID: id.NewID32(), WalletID: to.ID, Direction: walletDomain.Credit, Amount: amt, ReferenceKind: walletDomain.RefDeposit, ReferenceID: id.NewID32()},
	} {
		if err := entries.Create(ctx, e); err != nil {
			t.Fatalf("Create entry: %v", err)
		}
	}

	byRef, err := entries.ListByReference(ctx, walletDomain.RefRepayment, ref)
	if err != nil {
		t.Fatalf("ListByReference: %v", err)
	}
	if len(byRef) != 2 {
		t.Fatalf("entries for reference = %d, want 2", len(byRef))
	}
	net := decimal.Zero
	for _, e := range byRef {
		net = net.Add(e.Signed())
	}
	if !net.IsZero() {
		t.Fatalf("transfer legs must cancel out, net = %s", net)
	}

	own, err := entries.ListByWalletID(ctx, to.ID)
	if err != nil || len(own) != 2 {
		t.Fatalf("ListByWalletID = %d, %v; want 2", len(own), err)
	}
}

func TestCreditScore_CreateLockSave(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCreditScoreRepository(db)
	ctx := context.Background()

	user := id.NewID32()
	if err := repo.Create(ctx, creditDomain.NewScore(user)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s, err := repo.GetByUserIDForUpdate(ctx, user)
	if err != nil {
		t.Fatalf("GetByUserIDForUpdate: %v", err)
	}
	if s.Score != 600 {
		t.Fatalf("initial score = %d, want 600", s.Score)
	}
	s.LatePayments = 2
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, user)
	if got.LatePayments != 2 {
		t.Fatalf("late payments = %d", got.LatePayments)
	}
}
