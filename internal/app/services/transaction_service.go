package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunrk/feeledger/internal/app/feeimport"
	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// TransactionService defines the interface for fee transaction operations
type TransactionService interface {
	AddTransaction(ctx context.Context, hallTicketNo string, req *dto.CreateTransactionRequest) (*models.FeeTransaction, error)
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter, page, pageSize int) (*dto.TransactionListResponse, error)
	Approve(ctx context.Context, req *dto.ApprovalRequest) (*dto.ApprovalResponse, error)
	Reject(ctx context.Context, req *dto.ApprovalRequest) (*dto.ApprovalResponse, error)
}

// transactionServiceImpl implements the TransactionService interface
type transactionServiceImpl struct {
	transactionRepo *repositories.TransactionRepository
	studentRepo     *repositories.StudentRepository
	deptRepo        *repositories.DepartmentRepository
	feeConfigRepo   *repositories.FeeConfigRepository
}

// NewTransactionService creates a new transaction service instance
func NewTransactionService(
	transactionRepo *repositories.TransactionRepository,
	studentRepo *repositories.StudentRepository,
	deptRepo *repositories.DepartmentRepository,
	feeConfigRepo *repositories.FeeConfigRepository,
) TransactionService {
	return &transactionServiceImpl{
		transactionRepo: transactionRepo,
		studentRepo:     studentRepo,
		deptRepo:        deptRepo,
		feeConfigRepo:   feeConfigRepo,
	}
}

// AddTransaction records a manually entered payment against a student's
// year locker. The locker is opened on demand with targets snapshotted
// from the active fee configuration; the transaction starts PENDING.
func (s *transactionServiceImpl) AddTransaction(ctx context.Context, hallTicketNo string, req *dto.CreateTransactionRequest) (*models.FeeTransaction, error) {
	feeType, err := parseFeeType(req.FeeType)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
	if err != nil {
		return nil, err
	}

	locker := student.LockerForYear(req.Year)
	if locker == nil {
		resolved, err := loadResolvedConfig(ctx, s.feeConfigRepo, s.deptRepo)
		if err != nil {
			return nil, err
		}
		t := resolved.Resolve(student.Department, req.Year, student.EntryType, student.Batch)
		locker = &models.YearLocker{
			StudentID:        student.ID,
			Year:             req.Year,
			TuitionTarget:    t.Tuition,
			UniversityTarget: t.University,
		}
		student.Lockers = fees.Reconcile(student.Lockers, []*models.YearLocker{locker})
		locker = student.LockerForYear(req.Year)
	}

	paymentDate := feeimport.NormalizeDate(req.PaymentDate)

	transaction := &models.FeeTransaction{
		ID:            uuid.NewString(),
		HallTicketNo:  student.HallTicketNo,
		FeeType:       feeType,
		Amount:        req.Amount,
		ChallanNo:     req.ChallanNo,
		PaymentMode:   req.PaymentMode,
		PaymentDate:   paymentDate,
		AcademicYear:  fees.AcademicYearFor(student.AdmissionYear, req.Year),
		FinancialYear: fees.DeriveFinancialYear(paymentDate),
		Status:        models.StatusPending,
	}
	locker.Transactions = append(locker.Transactions, transaction)

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}
	return transaction, nil
}

// ListTransactions retrieves a page of transactions
func (s *transactionServiceImpl) ListTransactions(ctx context.Context, filter repositories.TransactionFilter, page, pageSize int) (*dto.TransactionListResponse, error) {
	if filter.Department != "" {
		filter.Department = fees.Normalize(filter.Department)
	}

	transactions, total, err := s.transactionRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	return &dto.TransactionListResponse{
		Transactions: transactions,
		Pagination:   buildPagination(page, pageSize, total),
	}, nil
}

// Approve moves pending transactions to APPROVED. Transactions already
// in a terminal state are skipped, not failed.
func (s *transactionServiceImpl) Approve(ctx context.Context, req *dto.ApprovalRequest) (*dto.ApprovalResponse, error) {
	if strings.TrimSpace(req.Approver) == "" {
		return nil, apperrors.ErrApproverRequired
	}
	return s.setStatus(ctx, req, models.StatusApproved)
}

// Reject moves pending transactions to REJECTED.
func (s *transactionServiceImpl) Reject(ctx context.Context, req *dto.ApprovalRequest) (*dto.ApprovalResponse, error) {
	return s.setStatus(ctx, req, models.StatusRejected)
}

func (s *transactionServiceImpl) setStatus(ctx context.Context, req *dto.ApprovalRequest, status models.TransactionStatus) (*dto.ApprovalResponse, error) {
	if len(req.TransactionIDs) == 0 {
		return nil, apperrors.ErrNoTransactionIDs
	}

	approvalDate := time.Now().Format("2006-01-02")
	updated, err := s.transactionRepo.SetStatus(ctx, req.TransactionIDs, status, req.Approver, approvalDate)
	if err != nil {
		return nil, err
	}

	return &dto.ApprovalResponse{
		Updated: int(updated),
		Skipped: len(req.TransactionIDs) - int(updated),
	}, nil
}

func parseFeeType(raw string) (models.FeeType, error) {
	switch {
	case strings.EqualFold(raw, string(models.FeeTuition)):
		return models.FeeTuition, nil
	case strings.EqualFold(raw, string(models.FeeUniversity)):
		return models.FeeUniversity, nil
	case strings.EqualFold(raw, string(models.FeeOther)):
		return models.FeeOther, nil
	}
	return "", fmt.Errorf("%w: unknown fee type %q", apperrors.ErrValidationFailed, raw)
}
