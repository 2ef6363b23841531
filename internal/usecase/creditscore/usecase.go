package creditscore

import (
	"context"
	"errors"

	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/uow"

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

// Recalculate recomputes the user's score from the stored counters. It is
// safe to call any number of times.
func (u *Usecase) Recalculate(ctx context.Context, userID string) (*ScoreDTO, error) {
	var dto *ScoreDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Scores.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return credit.ErrNotFound
			}
			return err
		}
		next := credit.Compute(s.OnTimePayments, s.LatePayments, s.DefaultsCount)
		if next != s.Score {
			s.Score = next
			if err := r.Scores.Save(ctx, s); err != nil {
				return err
			}
		}
		dto = toDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Debug("credit score recalculated", zap.String("user_id", userID), zap.Int("score", dto.Score))
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*ScoreDTO, error) {
	var dto *ScoreDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Scores.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return credit.ErrNotFound
			}
			return err
		}
		dto = toDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Increment bumps one counter inside the caller's transaction. The record is
// row-locked so concurrent events for the same user serialize; a user with
// no record yet gets a fresh one.
func Increment(ctx context.Context, r uow.Repos, userID string, c Counter) error {
	s, err := r.Scores.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		s = credit.NewScore(userID)
		if err := r.Scores.Create(ctx, s); err != nil {
			return err
		}
	}
	switch c {
	case LoansTaken:
		s.TotalLoansTaken++
	case OnTimePayment:
		s.OnTimePayments++
	case LatePayment:
		s.LatePayments++
	case Default:
		s.DefaultsCount++
	}
	return r.Scores.Save(ctx, s)
}

func toDTO(s *credit.Score) *ScoreDTO {
	return &ScoreDTO{
		UserID:          s.UserID,
		Score:           s.Score,
		TotalLoansTaken: s.TotalLoansTaken,
		OnTimePayments:  s.OnTimePayments,
		LatePayments:    s.LatePayments,
		DefaultsCount:   s.DefaultsCount,
		UpdatedAt:       s.UpdatedAt,
	}
}
