package disbursement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/errs"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/domain/wallet"
	"p2p-lending-ledger/internal/infrastructure/metrics"
	"p2p-lending-ledger/internal/usecase/contract"
	"p2p-lending-ledger/internal/usecase/creditscore"
	"p2p-lending-ledger/internal/usecase/ledger"
	"p2p-lending-ledger/pkg/amortization"
	"p2p-lending-ledger/pkg/id"
	"p2p-lending-ledger/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow     uow.UnitOfWork
	log     *zap.Logger
	metrics *metrics.Recorder
	// platformUserID receives the processing fee when set; otherwise the fee
	// leaves the lender's wallet without being credited anywhere.
	platformUserID string
	now            func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger, m *metrics.Recorder, platformUserID string) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log, metrics: m, platformUserID: platformUserID, now: time.Now}
}

// Disburse funds an approved application from the lender's wallet. The
// contract, its schedule, both ledger movements and the borrower's loan
// counter are written in one transaction.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*contract.ContractDTO, error) {
	now := u.now().UTC()
	var dto *contract.ContractDTO

	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *loan.Application) error {
		if a.Status != loan.StatusApproved {
			return loan.ErrApplicationNotApproved
		}
		if _, err := r.Contracts.GetByApplicationID(ctx, a.ID); err == nil {
			return loan.ErrAlreadyDisbursed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if a.BorrowerID == in.LenderID {
			return loan.ErrSelfFunding
		}

		p, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrProductNotFound
			}
			return err
		}

		fee := p.ProcessingFee
		total := a.RequestedAmount.Add(fee)

		lockIDs := []string{in.LenderID, a.BorrowerID}
		if fee.IsPositive() && u.platformUserID != "" {
			lockIDs = append(lockIDs, u.platformUserID)
		}
		ws, err := ledger.LockWallets(ctx, r, lockIDs...)
		if err != nil {
			return err
		}
		lender, borrower := ws[in.LenderID], ws[a.BorrowerID]
		if lender.Balance.LessThan(total) {
			return wallet.ErrInsufficientFunds
		}

		plan, err := amortization.Schedule(a.RequestedAmount, p.InterestRate, p.TermMonths, now)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidInput, err)
		}

		c := &loan.Contract{
			ContractID:    id.NewID32(),
			ApplicationID: a.ID,
			BorrowerID:    a.BorrowerID,
			LenderID:      in.LenderID,
			Principal:     a.RequestedAmount,
			InterestRate:  p.InterestRate,
			TermMonths:    p.TermMonths,
			ProcessingFee: fee,
			StartDate:     now,
			EndDate:       now.AddDate(0, p.TermMonths, 0),
			Status:        loan.ContractActive,
		}
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}

		rows := make([]schedule.Row, 0, len(plan))
		for _, inst := range plan {
			rows = append(rows, schedule.Row{
				ScheduleID:    id.NewID32(),
				ContractID:    c.ID,
				InstallmentNo: inst.Number,
				DueDate:       inst.DueDate,
				AmountDue:     inst.AmountDue,
				Principal:     inst.Principal,
				Interest:      inst.Interest,
				Status:        schedule.StatusPending,
			})
		}
		if err := r.Schedules.CreateBatch(ctx, rows); err != nil {
			return err
		}

		posting := ledger.Posting{
			Kind:        wallet.RefDisbursement,
			ReferenceID: c.ContractID,
			Description: fmt.Sprintf("loan %s disbursement", a.ApplicationID),
		}
		if err := ledger.Debit(ctx, r, lender, total, posting); err != nil {
			return err
		}
		if err := ledger.Credit(ctx, r, borrower, a.RequestedAmount, posting); err != nil {
			return err
		}
		if platform, ok := ws[u.platformUserID]; ok && fee.IsPositive() {
			feePosting := posting
			feePosting.Description = fmt.Sprintf("loan %s processing fee", a.ApplicationID)
			if err := ledger.Credit(ctx, r, platform, fee, feePosting); err != nil {
				return err
			}
		}

		if err := creditscore.Increment(ctx, r, a.BorrowerID, creditscore.LoansTaken); err != nil {
			return err
		}

		dto = contract.ToDTO(c, rows)
		dto.ApplicationID = a.ApplicationID
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// only the up-front application lock surfaces a raw not-found
		err = loan.ErrApplicationNotFound
	}

	u.metrics.Disbursement(metrics.OutcomeOf(err))
	log := logger.FromContext(ctx, u.log).With(
		zap.String("application_id", in.ApplicationID),
		zap.String("lender_id", in.LenderID),
	)
	if err != nil {
		log.Warn("disbursement rejected", zap.Error(err))
		return nil, err
	}
	log.Info("loan disbursed",
		zap.String("contract_id", dto.ContractID),
		zap.String("principal", dto.Principal.StringFixed(2)),
		zap.String("processing_fee", dto.ProcessingFee.StringFixed(2)),
	)
	return dto, nil
}
