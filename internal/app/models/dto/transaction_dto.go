package dto

import (
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// CreateTransactionRequest represents a manually entered payment
type CreateTransactionRequest struct {
	Year        int             `json:"year" binding:"required,gte=1" example:"1"`
	FeeType     string          `json:"feeType" binding:"required" example:"Tuition" enums:"Tuition,University,Other"`
	Amount      decimal.Decimal `json:"amount" binding:"required" example:"100000"`
	ChallanNo   string          `json:"challanNo"`
	PaymentMode string          `json:"paymentMode" example:"DD"`
	PaymentDate string          `json:"paymentDate" example:"01.09.2025"`
}

// ApprovalRequest represents a bulk approve/reject operation
type ApprovalRequest struct {
	TransactionIDs []string `json:"transactionIds" binding:"required,min=1"`
	Approver       string   `json:"approver" example:"A. Sharma"`
}

// ApprovalResponse reports the outcome of a bulk transition. Skipped
// ids were already in a terminal state; that is a no-op, not an error.
type ApprovalResponse struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// TransactionListResponse represents a page of transactions
type TransactionListResponse struct {
	Transactions []*models.FeeTransaction `json:"transactions"`
	Pagination   PaginationInfo           `json:"pagination"`
}
