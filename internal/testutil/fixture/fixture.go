// Package fixture seeds products, wallets and applications into a test
// database through the real repositories.
package fixture

import (
	"context"
	"testing"

	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/internal/testutil/testdb"
	"p2p-lending-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Fixture struct {
	t   testing.TB
	DB  *gorm.DB
	UoW *mysql.GormUoW
}

func New(t testing.TB) *Fixture {
	t.Helper()
	gdb := testdb.Open(t)
	return &Fixture{t: t, DB: gdb, UoW: mysql.NewGormUoW(gdb)}
}

func (f *Fixture) Repos() uow.Repos { return mysql.NewRepos(f.DB) }

func (f *Fixture) must(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("fixture: %v", err)
	}
}

type ProductSpec struct {
	Min, Max, Rate, Fee string
	Term                int
	Inactive            bool
}

func (f *Fixture) Product(s ProductSpec) *loan.Product {
	f.t.Helper()
	p := &loan.Product{
		ProductID:     id.NewID32(),
		Name:          "micro " + s.Rate,
		MinAmount:     decimal.RequireFromString(s.Min),
		MaxAmount:     decimal.RequireFromString(s.Max),
		InterestRate:  decimal.RequireFromString(s.Rate),
		TermMonths:    s.Term,
		ProcessingFee: decimal.RequireFromString(s.Fee),
		Active:        !s.Inactive,
	}
	f.must(f.Repos().Products.Create(context.Background(), p))
	return p
}

// User opens a wallet holding balance, backed by one deposit entry so the
// wallet reconciles, plus a fresh credit score record.
func (f *Fixture) User(balance string) string {
	f.t.Helper()
	ctx := context.Background()
	userID := id.NewID32()
	amt := decimal.RequireFromString(balance)
	f.must(f.UoW.WithinTx(ctx, func(r uow.Repos) error {
		w := &wallet.Wallet{UserID: userID, Balance: amt}
		if err := r.Wallets.Create(ctx, w); err != nil {
			return err
		}
		if amt.IsPositive() {
			if err := r.Entries.Create(ctx, &wallet.Entry{
				EntryID:       id.NewID32(),
				WalletID:      w.ID,
				Direction:     wallet.Credit,
				Amount:        amt,
				ReferenceKind: wallet.RefDeposit,
				ReferenceID:   id.NewID32(),
				Description:   "seed",
			}); err != nil {
				return err
			}
		}
		return r.Scores.Create(ctx, credit.NewScore(userID))
	}))
	return userID
}

func (f *Fixture) Application(borrowerID string, p *loan.Product, amount string, status loan.ApplicationStatus) *loan.Application {
	f.t.Helper()
	a := &loan.Application{
		ApplicationID:   id.NewID32(),
		BorrowerID:      borrowerID,
		ProductID:       p.ID,
		RequestedAmount: decimal.RequireFromString(amount),
		Status:          status,
	}
	f.must(f.Repos().Applications.Create(context.Background(), a))
	return a
}

func (f *Fixture) Balance(userID string) decimal.Decimal {
	f.t.Helper()
	w, err := f.Repos().Wallets.GetByUserID(context.Background(), userID)
	f.must(err)
	return w.Balance
}

func (f *Fixture) Score(userID string) *credit.Score {
	f.t.Helper()
	s, err := f.Repos().Scores.GetByUserID(context.Background(), userID)
	f.must(err)
	return s
}

// Count returns the number of rows in table.
func (f *Fixture) Count(table string) int64 {
	f.t.Helper()
	var n int64
	f.must(f.DB.Table(table).Count(&n).Error)
	return n
}
