package ledger

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/pkg/id"
	"p2p-lending-ledger/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

// Open creates the user's wallet and credit score record if they do not
// exist yet. Calling it again returns the existing wallet.
func (u *Usecase) Open(ctx context.Context, userID string) (*WalletDTO, error) {
	var dto *WalletDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserID(ctx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			w = &wallet.Wallet{UserID: userID, Balance: decimal.Zero}
			if err := r.Wallets.Create(ctx, w); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		if _, err := r.Scores.GetByUserID(ctx, userID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := r.Scores.Create(ctx, credit.NewScore(userID)); err != nil {
				return err
			}
		}
		dto = toWalletDTO(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Deposit(ctx context.Context, in MovementInput) (*WalletDTO, error) {
	return u.move(ctx, in, wallet.Credit)
}

func (u *Usecase) Withdraw(ctx context.Context, in MovementInput) (*WalletDTO, error) {
	return u.move(ctx, in, wallet.Debit)
}

func (u *Usecase) move(ctx context.Context, in MovementInput, dir wallet.Direction) (*WalletDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, wallet.ErrInvalidAmount
	}
	p := Posting{Kind: wallet.RefDeposit, ReferenceID: id.NewID32(), Description: in.Description}
	if dir == wallet.Debit {
		p.Kind = wallet.RefWithdrawal
	}

	var dto *WalletDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ws, err := LockWallets(ctx, r, in.UserID)
		if err != nil {
			return err
		}
		w := ws[in.UserID]
		if dir == wallet.Debit {
			err = Debit(ctx, r, w, in.Amount, p)
		} else {
			err = Credit(ctx, r, w, in.Amount, p)
		}
		if err != nil {
			return err
		}
		dto = toWalletDTO(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, u.log).Info("wallet movement",
		zap.String("user_id", in.UserID),
		zap.String("kind", string(p.Kind)),
		zap.String("reference_id", p.ReferenceID),
		zap.String("amount", in.Amount.StringFixed(2)),
	)
	return dto, nil
}

// Transfer runs the ledger primitive in its own transaction.
func (u *Usecase) Transfer(ctx context.Context, in TransferInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return Transfer(ctx, r, in.FromUserID, in.ToUserID, in.Amount, Posting{
			Kind:        wallet.ReferenceKind(in.Kind),
			ReferenceID: in.ReferenceID,
			Description: in.Description,
		})
	})
}

func (u *Usecase) Balance(ctx context.Context, userID string) (*WalletDTO, error) {
	var dto *WalletDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wallet.ErrNotFound
			}
			return err
		}
		dto = toWalletDTO(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Entries returns the wallet's history together with a reconciliation of
// the stored balance against the net of all entries.
func (u *Usecase) Entries(ctx context.Context, userID string) (*StatementDTO, error) {
	var dto *StatementDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wallet.ErrNotFound
			}
			return err
		}
		entries, err := r.Entries.ListByWalletID(ctx, w.ID)
		if err != nil {
			return err
		}

		net := decimal.Zero
		out := make([]EntryDTO, 0, len(entries))
		for _, e := range entries {
			net = net.Add(e.Signed())
			out = append(out, EntryDTO{
				EntryID:       e.EntryID,
				Direction:     string(e.Direction),
				Amount:        e.Amount,
				ReferenceKind: string(e.ReferenceKind),
				ReferenceID:   e.ReferenceID,
				Description:   e.Description,
				CreatedAt:     e.CreatedAt,
			})
		}
		dto = &StatementDTO{
			UserID:     w.UserID,
			Balance:    w.Balance,
			Net:        net,
			Reconciled: net.Equal(w.Balance),
			Entries:    out,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !dto.Reconciled {
		u.log.Error("wallet balance does not match ledger",
			zap.String("user_id", userID),
			zap.String("balance", dto.Balance.String()),
			zap.String("net", dto.Net.String()),
		)
	}
	return dto, nil
}

func toWalletDTO(w *wallet.Wallet) *WalletDTO {
	return &WalletDTO{UserID: w.UserID, Balance: w.Balance, UpdatedAt: w.UpdatedAt}
}
