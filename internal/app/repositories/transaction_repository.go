package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// TransactionFilter narrows transaction listing queries.
type TransactionFilter struct {
	Status     models.TransactionStatus
	FeeType    models.FeeType
	Department string
	// Payment date bounds in ISO form, inclusive.
	FromDate string
	ToDate   string
}

// CollectionAggregate is one row of the collection report: total
// approved amount per department and fee type inside a date range.
type CollectionAggregate struct {
	Department string
	FeeType    models.FeeType
	Count      int64
	Total      decimal.Decimal
}

// TransactionRepository handles database operations for fee transactions
type TransactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a single transaction.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.FeeTransaction, error) {
	query := `
		SELECT id, locker_id, hall_ticket_no, fee_type, amount, challan_no,
			payment_mode, payment_date, academic_year, financial_year,
			status, approved_by, approval_date, created_at
		FROM fee_transactions
		WHERE id = $1`

	t := &models.FeeTransaction{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.LockerID, &t.HallTicketNo, &t.FeeType, &t.Amount, &t.ChallanNo,
		&t.PaymentMode, &t.PaymentDate, &t.AcademicYear, &t.FinancialYear,
		&t.Status, &t.ApprovedBy, &t.ApprovalDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}
	return t, nil
}

// List retrieves transactions with filtering and pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter, page, pageSize int) ([]*models.FeeTransaction, int64, error) {
	qb := r.sb.Select(
		"t.id", "t.locker_id", "t.hall_ticket_no", "t.fee_type", "t.amount", "t.challan_no",
		"t.payment_mode", "t.payment_date", "t.academic_year", "t.financial_year",
		"t.status", "t.approved_by", "t.approval_date", "t.created_at",
		"COUNT(*) OVER() AS total_count",
	).From("fee_transactions t")

	if filter.Department != "" {
		qb = qb.Join("students s ON LOWER(s.hall_ticket_no) = LOWER(t.hall_ticket_no)").
			Where(squirrel.Eq{"s.department": filter.Department})
	}
	if filter.Status != "" {
		qb = qb.Where(squirrel.Eq{"t.status": filter.Status})
	}
	if filter.FeeType != "" {
		qb = qb.Where(squirrel.Eq{"t.fee_type": filter.FeeType})
	}
	if filter.FromDate != "" {
		qb = qb.Where(squirrel.GtOrEq{"t.payment_date": filter.FromDate})
	}
	if filter.ToDate != "" {
		qb = qb.Where(squirrel.LtOrEq{"t.payment_date": filter.ToDate})
	}

	if page < 1 {
		page = 1
	}
	qb = qb.OrderBy("t.created_at DESC", "t.id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build transaction list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.FeeTransaction
	var total int64
	for rows.Next() {
		t := &models.FeeTransaction{}
		err := rows.Scan(
			&t.ID, &t.LockerID, &t.HallTicketNo, &t.FeeType, &t.Amount, &t.ChallanNo,
			&t.PaymentMode, &t.PaymentDate, &t.AcademicYear, &t.FinancialYear,
			&t.Status, &t.ApprovedBy, &t.ApprovalDate, &t.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, total, nil
}

// SetStatus moves the given transactions out of PENDING. Transactions
// that are already APPROVED or REJECTED are left untouched; the return
// value is the number of rows actually updated. approvalDate is only
// stamped on approval.
func (r *TransactionRepository) SetStatus(ctx context.Context, ids []string, status models.TransactionStatus, approver, approvalDate string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.ErrNoTransactionIDs
	}

	if status != models.StatusApproved {
		approvalDate = ""
	}

	query := `
		UPDATE fee_transactions
		SET status = $2, approved_by = $3, approval_date = $4
		WHERE id = ANY($1) AND status = $5`

	cmdTag, err := r.db.Exec(ctx, query, ids, status, approver, approvalDate, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("error updating transaction status: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CollectionReport aggregates approved transactions by department and
// fee type inside an inclusive payment date range. Empty bounds leave
// that side of the range open.
func (r *TransactionRepository) CollectionReport(ctx context.Context, fromDate, toDate string) ([]*CollectionAggregate, error) {
	qb := r.sb.Select(
		"s.department", "t.fee_type", "COUNT(*)", "SUM(t.amount)",
	).From("fee_transactions t").
		Join("students s ON LOWER(s.hall_ticket_no) = LOWER(t.hall_ticket_no)").
		Where(squirrel.Eq{"t.status": models.StatusApproved})

	if fromDate != "" {
		qb = qb.Where(squirrel.GtOrEq{"t.payment_date": fromDate})
	}
	if toDate != "" {
		qb = qb.Where(squirrel.LtOrEq{"t.payment_date": toDate})
	}

	sql, args, err := qb.GroupBy("s.department", "t.fee_type").
		OrderBy("s.department", "t.fee_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build collection report query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying collection report: %w", err)
	}
	defer rows.Close()

	var aggregates []*CollectionAggregate
	for rows.Next() {
		a := &CollectionAggregate{}
		if err := rows.Scan(&a.Department, &a.FeeType, &a.Count, &a.Total); err != nil {
			return nil, fmt.Errorf("error scanning collection row: %w", err)
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}
