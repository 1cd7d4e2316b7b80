package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/feeimport"
	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
)

// ReportService defines the interface for reporting operations
type ReportService interface {
	CollectionReport(ctx context.Context, from, to string) (*dto.CollectionReportResponse, error)
	Defaulters(ctx context.Context, department string, year int) (*dto.DefaultersResponse, error)
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	transactionRepo *repositories.TransactionRepository
	studentRepo     *repositories.StudentRepository
}

// NewReportService creates a new report service instance
func NewReportService(transactionRepo *repositories.TransactionRepository, studentRepo *repositories.StudentRepository) ReportService {
	return &reportServiceImpl{
		transactionRepo: transactionRepo,
		studentRepo:     studentRepo,
	}
}

// CollectionReport totals approved payments by department and fee type
// inside an inclusive payment-date range. Bounds accept any supported
// date format; empty bounds leave that side open.
func (s *reportServiceImpl) CollectionReport(ctx context.Context, from, to string) (*dto.CollectionReportResponse, error) {
	fromISO := feeimport.NormalizeDate(from)
	toISO := feeimport.NormalizeDate(to)

	aggregates, err := s.transactionRepo.CollectionReport(ctx, fromISO, toISO)
	if err != nil {
		return nil, fmt.Errorf("error building collection report: %w", err)
	}

	resp := &dto.CollectionReportResponse{
		From:  fromISO,
		To:    toISO,
		Total: decimal.Zero,
	}
	for _, a := range aggregates {
		resp.Rows = append(resp.Rows, dto.CollectionRow{
			Department: a.Department,
			FeeType:    string(a.FeeType),
			Count:      int(a.Count),
			Total:      a.Total,
		})
		resp.Total = resp.Total.Add(a.Total)
	}
	return resp, nil
}

// Defaulters lists student-years whose approved payments fall short of
// the locker targets. Pending transactions do not count as paid.
func (s *reportServiceImpl) Defaulters(ctx context.Context, department string, year int) (*dto.DefaultersResponse, error) {
	if department != "" {
		department = fees.Normalize(department)
	}

	students, err := s.studentRepo.GetAllWithLockers(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("error loading students: %w", err)
	}

	resp := &dto.DefaultersResponse{}
	for _, student := range students {
		for _, locker := range student.Lockers {
			if year > 0 && locker.Year != year {
				continue
			}
			tuitionDue := locker.TuitionTarget.Sub(locker.PaidTotal(models.FeeTuition))
			universityDue := locker.UniversityTarget.Sub(locker.PaidTotal(models.FeeUniversity))
			if !tuitionDue.IsPositive() && !universityDue.IsPositive() {
				continue
			}
			if tuitionDue.IsNegative() {
				tuitionDue = decimal.Zero
			}
			if universityDue.IsNegative() {
				universityDue = decimal.Zero
			}
			resp.Rows = append(resp.Rows, dto.DefaulterRow{
				HallTicketNo:  student.HallTicketNo,
				Name:          student.Name,
				Department:    student.Department,
				Year:          locker.Year,
				TuitionDue:    tuitionDue,
				UniversityDue: universityDue,
			})
		}
	}
	return resp, nil
}
