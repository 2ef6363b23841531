package application

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/kyc"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/usecase/ledger"
	"p2p-lending-ledger/pkg/id"
	"p2p-lending-ledger/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	kyc kyc.EligibilityChecker
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, checker kyc.EligibilityChecker, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, kyc: checker, log: log}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	ok, err := u.kyc.IsEligible(ctx, in.BorrowerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, loan.ErrNotEligible
	}

	var dto *ApplicationDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByProductID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrProductNotFound
			}
			return err
		}
		if !p.Active {
			return loan.ErrProductInactive
		}
		if in.Amount.LessThan(p.MinAmount) || in.Amount.GreaterThan(p.MaxAmount) {
			return loan.ErrAmountOutOfRange
		}

		// the borrower's wallet lock serializes concurrent submissions
		if _, err := ledger.LockWallets(ctx, r, in.BorrowerID); err != nil {
			return err
		}
		pending, err := r.Applications.GetPendingByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			u.log.Debug("pending application exists", zap.String("application_id", pending.ApplicationID))
			return loan.ErrPendingApplication
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a := &loan.Application{
			ApplicationID:   id.NewID32(),
			BorrowerID:      in.BorrowerID,
			ProductID:       p.ID,
			RequestedAmount: in.Amount,
			Purpose:         in.Purpose,
			Status:          loan.StatusPending,
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, u.log).Info("loan application created",
		zap.String("application_id", dto.ApplicationID),
		zap.String("borrower_id", dto.BorrowerID),
	)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	var dto *ApplicationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrApplicationNotFound
			}
			return err
		}
		p, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		dto = toDTO(a, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel withdraws a PENDING application. Only its borrower may do so.
func (u *Usecase) Cancel(ctx context.Context, borrowerID, applicationID string) (*ApplicationDTO, error) {
	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *loan.Application) error {
		if a.BorrowerID != borrowerID {
			return loan.ErrNotApplicant
		}
		if a.Status != loan.StatusPending {
			return loan.ErrInvalidTransition
		}
		a.Status = loan.StatusCancelled
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		p, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		dto = toDTO(a, p)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(a *loan.Application, p *loan.Product) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		BorrowerID:      a.BorrowerID,
		ProductID:       p.ProductID,
		RequestedAmount: a.RequestedAmount,
		Purpose:         a.Purpose,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		ReviewerID:      a.ReviewerID,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
	}
}
