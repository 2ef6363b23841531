package contract

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Schedule returns the contract with all its rows. Only the borrower and the
// lender of record may read it.
func (u *Usecase) Schedule(ctx context.Context, callerID, contractID string) (*ContractDTO, error) {
	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByContractID(ctx, contractID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrContractNotFound
			}
			return err
		}
		if callerID != c.BorrowerID && callerID != c.LenderID {
			return loan.ErrNotParty
		}
		rows, err := r.Schedules.ListByContractID(ctx, c.ID)
		if err != nil {
			return err
		}
		dto = ToDTO(c, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
