package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType identifies which target a payment counts against
type FeeType string

const (
	FeeTuition    FeeType = "Tuition"
	FeeUniversity FeeType = "University"
	FeeOther      FeeType = "Other"
)

// TransactionStatus is the approval lifecycle state of a payment.
// PENDING is the only non-terminal state.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusRejected TransactionStatus = "REJECTED"
)

// FeeTransaction records a single payment against a year locker.
// Immutable once approved.
type FeeTransaction struct {
	ID            string            `json:"id" db:"id" example:"6d1c9f3a-0b0e-4a67-8f11-2f4f4a8f2a01"`
	LockerID      int64             `json:"lockerId" db:"locker_id"`
	HallTicketNo  string            `json:"hallTicketNo" db:"hall_ticket_no"`
	FeeType       FeeType           `json:"feeType" db:"fee_type" example:"Tuition"`
	Amount        decimal.Decimal   `json:"amount" db:"amount" example:"100000"`
	ChallanNo     string            `json:"challanNo" db:"challan_no"`
	PaymentMode   string            `json:"paymentMode" db:"payment_mode" example:"DD"`
	PaymentDate   string            `json:"paymentDate" db:"payment_date" example:"2025-09-01"`
	AcademicYear  string            `json:"academicYear" db:"academic_year" example:"2025-26"`
	FinancialYear string            `json:"financialYear" db:"financial_year" example:"2025-26"`
	Status        TransactionStatus `json:"status" db:"status" example:"PENDING"`
	ApprovedBy    string            `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovalDate  string            `json:"approvalDate,omitempty" db:"approval_date"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
}

// Terminal reports whether the transaction has left the PENDING state.
func (t *FeeTransaction) Terminal() bool {
	return t.Status == StatusApproved || t.Status == StatusRejected
}
