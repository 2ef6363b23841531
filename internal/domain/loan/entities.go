package loan

import (
	"fmt"
	"time"

	"p2p-lending-ledger/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound        = fmt.Errorf("loan product %w", errs.ErrNotFound)
	ErrProductInactive        = fmt.Errorf("loan product inactive: %w", errs.ErrInvalidState)
	ErrAmountOutOfRange       = fmt.Errorf("requested amount outside product limits: %w", errs.ErrInvalidInput)
	ErrApplicationNotFound    = fmt.Errorf("loan application %w", errs.ErrNotFound)
	ErrApplicationNotApproved = fmt.Errorf("loan application not approved: %w", errs.ErrInvalidState)
	ErrPendingApplication     = fmt.Errorf("borrower already has a pending application: %w", errs.ErrInvalidState)
	ErrInvalidTransition      = fmt.Errorf("application status transition not allowed: %w", errs.ErrInvalidState)
	ErrNotApplicant           = fmt.Errorf("caller is not the applicant: %w", errs.ErrUnauthorized)
	ErrNotEligible            = fmt.Errorf("borrower is not eligible to borrow: %w", errs.ErrUnauthorized)
	ErrSelfFunding            = fmt.Errorf("lender cannot fund own application: %w", errs.ErrInvalidState)
	ErrContractNotFound       = fmt.Errorf("loan contract %w", errs.ErrNotFound)
	ErrAlreadyDisbursed       = fmt.Errorf("application already disbursed: %w", errs.ErrInvalidState)
	ErrSelfReview             = fmt.Errorf("reviewer cannot review own application: %w", errs.ErrUnauthorized)
	ErrNotParty               = fmt.Errorf("caller is neither borrower nor lender of the contract: %w", errs.ErrUnauthorized)
)

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "PENDING"
	StatusApproved  ApplicationStatus = "APPROVED"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusCancelled ApplicationStatus = "CANCELLED"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractClosed    ContractStatus = "CLOSED"
	ContractDefaulted ContractStatus = "DEFAULTED"
)

// Table: loan_products. Rows are never edited once referenced; a changed
// offer is a new product.
type Product struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProductID     string          `gorm:"column:product_id;type:char(32);not null;uniqueIndex:ux_loan_products_product_id" json:"product_id"`
	Name          string          `gorm:"column:name;size:128;not null" json:"name"`
	MinAmount     decimal.Decimal `gorm:"column:min_amount;type:decimal(18,2);not null" json:"min_amount"`
	MaxAmount     decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2);not null" json:"max_amount"`
	InterestRate  decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	TermMonths    int             `gorm:"column:term_months;not null" json:"term_months"`
	ProcessingFee decimal.Decimal `gorm:"column:processing_fee;type:decimal(18,2);not null" json:"processing_fee"`
	Active        bool            `gorm:"column:active;not null" json:"active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "loan_products" }

// Table: loan_applications
type Application struct {
	ID              uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID   string            `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_loan_applications_application_id" json:"application_id"`
	BorrowerID      string            `gorm:"column:borrower_id;type:char(32);not null;index:idx_loan_applications_borrower" json:"borrower_id"`
	ProductID       uint64            `gorm:"column:product_id;not null;index" json:"-"`
	RequestedAmount decimal.Decimal   `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	Purpose         *string           `gorm:"column:purpose;type:text" json:"purpose,omitempty"`
	Status          ApplicationStatus `gorm:"column:status;size:16;not null;default:PENDING" json:"status"`
	RejectionReason *string           `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	ReviewerID      *string           `gorm:"column:reviewer_id;type:char(32)" json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time        `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// Table: loan_contracts. Rate, term and principal are copied from the
// product at disbursement and never follow later product changes.
type Contract struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ContractID    string          `gorm:"column:contract_id;type:char(32);not null;uniqueIndex:ux_loan_contracts_contract_id" json:"contract_id"`
	ApplicationID uint64          `gorm:"column:application_id;not null;uniqueIndex:ux_loan_contracts_application" json:"-"`
	BorrowerID    string          `gorm:"column:borrower_id;type:char(32);not null;index" json:"borrower_id"`
	LenderID      string          `gorm:"column:lender_id;type:char(32);not null;index" json:"lender_id"`
	Principal     decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	InterestRate  decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	TermMonths    int             `gorm:"column:term_months;not null" json:"term_months"`
	ProcessingFee decimal.Decimal `gorm:"column:processing_fee;type:decimal(18,2);not null" json:"processing_fee"`
	StartDate     time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate       time.Time       `gorm:"column:end_date;not null" json:"end_date"`
	Status        ContractStatus  `gorm:"column:status;size:16;not null;default:ACTIVE" json:"status"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string { return "loan_contracts" }
