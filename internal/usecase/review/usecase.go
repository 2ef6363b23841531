package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"p2p-lending-ledger/internal/domain/errs"
	domainLoan "p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrReasonRequired = fmt.Errorf("rejection reason is required: %w", errs.ErrInvalidInput)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log, now: time.Now}
}

func (u *Usecase) Approve(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	return u.decide(ctx, in, domainLoan.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, ErrReasonRequired
	}
	return u.decide(ctx, in, domainLoan.StatusRejected)
}

// decide moves a PENDING application to its final review status exactly
// once, under the application row lock.
func (u *Usecase) decide(ctx context.Context, in ReviewInput, to domainLoan.ApplicationStatus) (*ReviewDTO, error) {
	if u.uow == nil {
		return nil, domainLoan.ErrInvalidTransition
	}
	var dto *ReviewDTO

	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domainLoan.Application) error {
		if a.BorrowerID == in.ReviewerID {
			return domainLoan.ErrSelfReview
		}
		// State guard: only pending → approved/rejected
		if a.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}

		now := u.now().UTC()
		reviewer := in.ReviewerID
		a.Status = to
		a.ReviewerID = &reviewer
		a.ReviewedAt = &now
		if to == domainLoan.StatusRejected {
			reason := strings.TrimSpace(in.Reason)
			a.RejectionReason = &reason
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		dto = &ReviewDTO{
			ApplicationID:   a.ApplicationID,
			Status:          string(a.Status),
			ReviewerID:      reviewer,
			ReviewedAt:      now,
			RejectionReason: a.RejectionReason,
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLoan.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, u.log).Info("loan application reviewed",
		zap.String("application_id", dto.ApplicationID),
		zap.String("status", dto.Status),
		zap.String("reviewer_id", dto.ReviewerID),
	)
	return dto, nil
}
