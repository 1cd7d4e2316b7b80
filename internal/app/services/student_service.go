package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context, filter repositories.StudentFilter, page, pageSize int) (*dto.StudentListResponse, error)
	GetStudent(ctx context.Context, hallTicketNo string) (*models.Student, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, hallTicketNo string, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, hallTicketNo string) error
	GetSummary(ctx context.Context, hallTicketNo string) (*dto.StudentSummaryResponse, error)
	AddRemark(ctx context.Context, hallTicketNo string, req *dto.CreateRemarkRequest, author string) (*models.StudentRemark, error)
	DeleteRemark(ctx context.Context, hallTicketNo string, remarkID int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo   *repositories.StudentRepository
	remarkRepo    *repositories.RemarkRepository
	deptRepo      *repositories.DepartmentRepository
	feeConfigRepo *repositories.FeeConfigRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	remarkRepo *repositories.RemarkRepository,
	deptRepo *repositories.DepartmentRepository,
	feeConfigRepo *repositories.FeeConfigRepository,
) StudentService {
	return &studentServiceImpl{
		studentRepo:   studentRepo,
		remarkRepo:    remarkRepo,
		deptRepo:      deptRepo,
		feeConfigRepo: feeConfigRepo,
	}
}

// ListStudents retrieves a page of students
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter repositories.StudentFilter, page, pageSize int) (*dto.StudentListResponse, error) {
	if filter.Department != "" {
		filter.Department = fees.Normalize(filter.Department)
	}

	students, total, err := s.studentRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	return &dto.StudentListResponse{
		Students:   students,
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}

// GetStudent retrieves a student with lockers, transactions and remarks
func (s *studentServiceImpl) GetStudent(ctx context.Context, hallTicketNo string) (*models.Student, error) {
	return s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
}

// CreateStudent registers a student manually. Year lockers up to the
// current year of study are opened with targets snapshotted from the
// active fee configuration.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if strings.TrimSpace(req.HallTicketNo) == "" {
		return nil, fmt.Errorf("%w: hall ticket number cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	dept := fees.Normalize(req.Department)

	entryType := models.EntryRegular
	if strings.EqualFold(req.EntryType, string(models.EntryLateral)) {
		entryType = models.EntryLateral
	}

	currentYear := req.CurrentYear
	if currentYear < 1 {
		if entryType == models.EntryLateral {
			currentYear = 2
		} else {
			currentYear = 1
		}
	}

	course := req.Course
	if course == "" {
		course = string(models.CourseBE)
		if fees.IsMEProgram(dept) {
			course = string(models.CourseME)
		}
	}

	batch := req.Batch
	if batch == "" && req.AdmissionYear > 0 {
		resolved, err := s.resolver(ctx)
		if err != nil {
			return nil, err
		}
		duration := fees.ProgramDuration(dept, resolved.Department(dept))
		batch = fmt.Sprintf("%d-%02d", req.AdmissionYear, (req.AdmissionYear+duration)%100)
	}

	student := &models.Student{
		HallTicketNo:      strings.TrimSpace(req.HallTicketNo),
		Name:              strings.TrimSpace(req.Name),
		FatherName:        req.FatherName,
		Department:        dept,
		Course:            course,
		AdmissionCategory: req.AdmissionCategory,
		AdmissionYear:     req.AdmissionYear,
		Batch:             batch,
		CurrentYear:       currentYear,
		EntryType:         entryType,
	}

	resolved, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}
	student.Lockers = admissionLockers(student, resolved)

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent rewrites editable fields of an existing student
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, hallTicketNo string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
	if err != nil {
		return nil, err
	}

	student.Name = strings.TrimSpace(req.Name)
	student.FatherName = req.FatherName
	student.Department = fees.Normalize(req.Department)
	if req.Course != "" {
		student.Course = req.Course
	}
	student.AdmissionCategory = req.AdmissionCategory
	if req.AdmissionYear > 0 {
		student.AdmissionYear = req.AdmissionYear
	}
	if req.Batch != "" {
		student.Batch = req.Batch
	}
	student.CurrentYear = req.CurrentYear
	if req.EntryType != "" {
		if strings.EqualFold(req.EntryType, string(models.EntryLateral)) {
			student.EntryType = models.EntryLateral
		} else {
			student.EntryType = models.EntryRegular
		}
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student and everything attached to it
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, hallTicketNo string) error {
	return s.studentRepo.Delete(ctx, hallTicketNo)
}

// GetSummary builds the per-year paid-versus-target view of a student.
// Only approved transactions count toward paid totals.
func (s *studentServiceImpl) GetSummary(ctx context.Context, hallTicketNo string) (*dto.StudentSummaryResponse, error) {
	student, err := s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
	if err != nil {
		return nil, err
	}

	summary := &dto.StudentSummaryResponse{
		HallTicketNo: student.HallTicketNo,
		Name:         student.Name,
		Department:   student.Department,
	}
	for _, locker := range student.Lockers {
		pending := 0
		for _, t := range locker.Transactions {
			if t.Status == models.StatusPending {
				pending++
			}
		}
		summary.Years = append(summary.Years, dto.YearSummary{
			Year:             locker.Year,
			TuitionTarget:    locker.TuitionTarget,
			TuitionPaid:      locker.PaidTotal(models.FeeTuition),
			UniversityTarget: locker.UniversityTarget,
			UniversityPaid:   locker.PaidTotal(models.FeeUniversity),
			OtherPaid:        locker.PaidTotal(models.FeeOther),
			PendingCount:     pending,
		})
	}
	return summary, nil
}

// AddRemark attaches an administrative note to a student
func (s *studentServiceImpl) AddRemark(ctx context.Context, hallTicketNo string, req *dto.CreateRemarkRequest, author string) (*models.StudentRemark, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: remark text cannot be empty", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
	if err != nil {
		return nil, err
	}

	remark := &models.StudentRemark{
		StudentID: student.ID,
		Text:      strings.TrimSpace(req.Text),
		Author:    author,
	}
	if err := s.remarkRepo.Add(ctx, remark); err != nil {
		return nil, err
	}
	return remark, nil
}

// DeleteRemark removes a remark from a student
func (s *studentServiceImpl) DeleteRemark(ctx context.Context, hallTicketNo string, remarkID int64) error {
	student, err := s.studentRepo.GetByHallTicket(ctx, hallTicketNo)
	if err != nil {
		return err
	}
	return s.remarkRepo.Delete(ctx, student.ID, remarkID)
}

func (s *studentServiceImpl) resolver(ctx context.Context) (*fees.ResolvedConfig, error) {
	return loadResolvedConfig(ctx, s.feeConfigRepo, s.deptRepo)
}
