package loanmock

import (
	"context"

	domain "p2p-lending-ledger/internal/domain/loan"
)

var (
	_ domain.ApplicationRepository = (*ApplicationRepo)(nil)
	_ domain.ProductRepository     = (*ProductRepo)(nil)
)

// ApplicationRepo is a function-backed mock that satisfies domain.ApplicationRepository.
// Writes default to a nil error; reads default to context.Canceled.
type ApplicationRepo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	SaveFn                        func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetPendingByBorrowerIDFn      func(ctx context.Context, borrowerID string) (*domain.Application, error)
}

func (m *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *ApplicationRepo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *ApplicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *ApplicationRepo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *ApplicationRepo) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*domain.Application, error) {
	if m.GetPendingByBorrowerIDFn != nil {
		return m.GetPendingByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

// ProductRepo is a function-backed mock that satisfies domain.ProductRepository.
type ProductRepo struct {
	CreateFn         func(ctx context.Context, p *domain.Product) error
	GetByProductIDFn func(ctx context.Context, productID string) (*domain.Product, error)
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.Product, error)
}

func (m *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *ProductRepo) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.GetByProductIDFn != nil {
		return m.GetByProductIDFn(ctx, productID)
	}
	return nil, context.Canceled
}

func (m *ProductRepo) GetByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
