package uow

import (
	"context"

	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/domain/wallet"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Products     loan.ProductRepository
	Applications loan.ApplicationRepository
	Contracts    loan.ContractRepository
	Schedules    schedule.Repository
	Repayments   schedule.TransactionRepository
	Wallets      wallet.Repository
	Entries      wallet.EntryRepository
	Scores       credit.Repository
}

// UnitOfWork runs fn inside one transaction: a nil return commits, any error
// rolls everything back.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *loan.Application) error) error
}
