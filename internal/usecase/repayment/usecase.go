package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/internal/infrastructure/metrics"
	"p2p-lending-ledger/internal/usecase/contract"
	"p2p-lending-ledger/internal/usecase/creditscore"
	"p2p-lending-ledger/internal/usecase/ledger"
	"p2p-lending-ledger/pkg/id"
	"p2p-lending-ledger/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScoreRecalculator refreshes a user's score after a committed repayment.
type ScoreRecalculator interface {
	Recalculate(ctx context.Context, userID string) (*creditscore.ScoreDTO, error)
}

type Usecase struct {
	uow       uow.UnitOfWork
	scores    ScoreRecalculator
	log       *zap.Logger
	metrics   *metrics.Recorder
	dailyRate decimal.Decimal
	now       func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, scores ScoreRecalculator, log *zap.Logger, m *metrics.Recorder, dailyRate decimal.Decimal) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, scores: scores, log: log, metrics: m, dailyRate: dailyRate, now: time.Now}
}

// Repay settles one schedule row. The transfer, the row update, the
// repayment record, the payment counter and contract closure commit
// together; the score is recalculated afterwards.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, schedule.ErrInvalidAmount
	}
	now := u.now().UTC()
	var dto *RepayDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		row, err := r.Schedules.GetByScheduleIDForUpdate(ctx, in.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return schedule.ErrNotFound
			}
			return err
		}
		c, err := r.Contracts.GetByID(ctx, row.ContractID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrContractNotFound
			}
			return err
		}
		if c.BorrowerID != in.BorrowerID {
			return schedule.ErrNotBorrower
		}
		if row.Status == schedule.StatusPaid {
			return schedule.ErrAlreadyPaid
		}
		if in.Amount.LessThan(row.AmountDue) {
			return schedule.ErrUnderpayment
		}

		fee, late := LateFee(*row, now, u.dailyRate)
		total := in.Amount.Add(fee)

		err = ledger.Transfer(ctx, r, in.BorrowerID, c.LenderID, total, ledger.Posting{
			Kind:        wallet.RefRepayment,
			ReferenceID: row.ScheduleID,
			Description: fmt.Sprintf("installment %d of contract %s", row.InstallmentNo, c.ContractID),
		})
		if err != nil {
			return err
		}

		row.Status = schedule.StatusPaid
		row.PaidOn = &now
		row.LateFee = &fee
		if err := r.Schedules.Save(ctx, row); err != nil {
			return err
		}

		txn := &schedule.Transaction{
			TransactionID: id.NewID32(),
			ScheduleID:    row.ID,
			AmountPaid:    in.Amount,
			LateFee:       fee,
			PaidAt:        now,
		}
		if err := r.Repayments.Create(ctx, txn); err != nil {
			return err
		}

		counter := creditscore.OnTimePayment
		if late {
			counter = creditscore.LatePayment
		}
		if err := creditscore.Increment(ctx, r, in.BorrowerID, counter); err != nil {
			return err
		}

		unpaid, err := r.Schedules.CountUnpaid(ctx, c.ID)
		if err != nil {
			return err
		}
		if unpaid == 0 {
			c.Status = loan.ContractClosed
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
		}

		dto = &RepayDTO{
			TransactionID:  txn.TransactionID,
			Row:            contract.ToRowDTO(*row),
			AmountPaid:     in.Amount,
			LateFee:        fee,
			TotalDebited:   total,
			Late:           late,
			ContractStatus: string(c.Status),
			PaidAt:         now,
		}
		return nil
	})

	fee := decimal.Zero
	if dto != nil {
		fee = dto.LateFee
	}
	u.metrics.Repayment(metrics.OutcomeOf(err), fee)

	log := logger.FromContext(ctx, u.log).With(
		zap.String("schedule_id", in.ScheduleID),
		zap.String("borrower_id", in.BorrowerID),
	)
	if err != nil {
		log.Warn("repayment rejected", zap.Error(err))
		return nil, err
	}
	log.Info("installment repaid",
		zap.String("transaction_id", dto.TransactionID),
		zap.String("late_fee", dto.LateFee.StringFixed(2)),
		zap.String("contract_status", dto.ContractStatus),
	)

	if u.scores != nil {
		s, err := u.scores.Recalculate(ctx, in.BorrowerID)
		if err != nil {
			// payment is already committed
			log.Error("credit score recalculation failed", zap.Error(err))
		} else {
			dto.Score = &s.Score
		}
	}
	return dto, nil
}
