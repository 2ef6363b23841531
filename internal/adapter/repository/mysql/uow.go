package mysql

import (
	"context"

	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// NewRepos binds every repository to db, which may be a transaction handle.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Products:     &ProductRepository{db: db},
		Applications: &ApplicationRepository{db: db},
		Contracts:    &ContractRepository{db: db},
		Schedules:    &ScheduleRepository{db: db},
		Repayments:   &RepaymentRepository{db: db},
		Wallets:      &WalletRepository{db: db},
		Entries:      &EntryRepository{db: db},
		Scores:       &CreditScoreRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *loan.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
