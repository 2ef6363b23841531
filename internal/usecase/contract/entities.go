package contract

import (
	"time"

	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

type ScheduleRowDTO struct {
	ScheduleID    string           `json:"schedule_id"`
	InstallmentNo int              `json:"installment_no"`
	DueDate       time.Time        `json:"due_date"`
	AmountDue     decimal.Decimal  `json:"amount_due"`
	Principal     decimal.Decimal  `json:"principal_component"`
	Interest      decimal.Decimal  `json:"interest_component"`
	Status        string           `json:"status"`
	LateFee       *decimal.Decimal `json:"late_fee,omitempty"`
	PaidOn        *time.Time       `json:"paid_on,omitempty"`
}

type ContractDTO struct {
	ContractID    string           `json:"contract_id"`
	ApplicationID string           `json:"application_id,omitempty"`
	BorrowerID    string           `json:"borrower_id"`
	LenderID      string           `json:"lender_id"`
	Principal     decimal.Decimal  `json:"principal"`
	InterestRate  decimal.Decimal  `json:"interest_rate"`
	TermMonths    int              `json:"term_months"`
	ProcessingFee decimal.Decimal  `json:"processing_fee"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	Status        string           `json:"status"`
	Schedule      []ScheduleRowDTO `json:"schedule,omitempty"`
}

func ToRowDTO(r schedule.Row) ScheduleRowDTO {
	return ScheduleRowDTO{
		ScheduleID:    r.ScheduleID,
		InstallmentNo: r.InstallmentNo,
		DueDate:       r.DueDate,
		AmountDue:     r.AmountDue,
		Principal:     r.Principal,
		Interest:      r.Interest,
		Status:        string(r.Status),
		LateFee:       r.LateFee,
		PaidOn:        r.PaidOn,
	}
}

func ToDTO(c *loan.Contract, rows []schedule.Row) *ContractDTO {
	dto := &ContractDTO{
		ContractID:    c.ContractID,
		BorrowerID:    c.BorrowerID,
		LenderID:      c.LenderID,
		Principal:     c.Principal,
		InterestRate:  c.InterestRate,
		TermMonths:    c.TermMonths,
		ProcessingFee: c.ProcessingFee,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Status:        string(c.Status),
	}
	if len(rows) > 0 {
		dto.Schedule = make([]ScheduleRowDTO, 0, len(rows))
		for _, r := range rows {
			dto.Schedule = append(dto.Schedule, ToRowDTO(r))
		}
	}
	return dto
}
