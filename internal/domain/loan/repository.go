package loan

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	GetByID(ctx context.Context, id uint64) (*Product, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// Row lock held until the surrounding transaction ends.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*Application, error)
}

type ContractRepository interface {
	Create(ctx context.Context, c *Contract) error
	Save(ctx context.Context, c *Contract) error
	GetByID(ctx context.Context, id uint64) (*Contract, error)
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Contract, error)
}
