package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// TransactionController handles listing and bulk approval of payments
type TransactionController struct {
	transactionService services.TransactionService
}

// NewTransactionController creates a new TransactionController
func NewTransactionController(transactionService services.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// ListTransactions retrieves a page of transactions
// @Summary List transactions
// @Description Retrieves transactions with optional status/feeType/department/date filters, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Transaction status" Enums(PENDING, APPROVED, REJECTED)
// @Param feeType query string false "Fee type" Enums(Tuition, University, Other)
// @Param department query string false "Department code or raw name"
// @Param from query string false "Payment date lower bound (inclusive)"
// @Param to query string false "Payment date upper bound (inclusive)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.TransactionListResponse} "Transactions retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transactions [get]
func (c *TransactionController) ListTransactions(ctx *gin.Context) {
	filter := repositories.TransactionFilter{
		Status:     models.TransactionStatus(ctx.Query("status")),
		FeeType:    models.FeeType(ctx.Query("feeType")),
		Department: ctx.Query("department"),
		FromDate:   ctx.Query("from"),
		ToDate:     ctx.Query("to"),
	}
	page, pageSize := pageParams(ctx)

	resp, err := c.transactionService.ListTransactions(ctx, filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ApproveTransactions approves pending transactions in bulk
// @Summary Approve transactions
// @Description Moves pending transactions to APPROVED; already-terminal ids are skipped, not failed
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApprovalRequest true "Transaction ids and approver name"
// @Success 200 {object} dto.APIResponse{data=dto.ApprovalResponse} "Approval applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transactions/approve [post]
func (c *TransactionController) ApproveTransactions(ctx *gin.Context) {
	var req dto.ApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid approval data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if req.Approver == "" {
		req.Approver = displayNameFrom(ctx)
	}

	resp, err := c.transactionService.Approve(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// RejectTransactions rejects pending transactions in bulk
// @Summary Reject transactions
// @Description Moves pending transactions to REJECTED; already-terminal ids are skipped, not failed
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApprovalRequest true "Transaction ids"
// @Success 200 {object} dto.APIResponse{data=dto.ApprovalResponse} "Rejection applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transactions/reject [post]
func (c *TransactionController) RejectTransactions(ctx *gin.Context) {
	var req dto.ApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rejection data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if req.Approver == "" {
		req.Approver = displayNameFrom(ctx)
	}

	resp, err := c.transactionService.Reject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
