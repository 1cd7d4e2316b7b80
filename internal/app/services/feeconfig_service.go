package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// FeeConfigService defines the interface for fee configuration operations
type FeeConfigService interface {
	GetConfig(ctx context.Context) (*dto.FeeConfigResponse, error)
	UpdateDefault(ctx context.Context, req *dto.UpdateFeeConfigRequest, updatedBy string) (*dto.ApplyTargetsResponse, error)
	GetBatchConfig(ctx context.Context, batch string) (*models.FeeLockerConfig, error)
	UpdateBatchConfig(ctx context.Context, batch string, req *dto.UpdateBatchFeeConfigRequest, updatedBy string) error
	DeleteBatchConfig(ctx context.Context, batch string, updatedBy string) error
}

// feeConfigServiceImpl implements the FeeConfigService interface
type feeConfigServiceImpl struct {
	feeConfigRepo *repositories.FeeConfigRepository
	studentRepo   *repositories.StudentRepository
	deptRepo      *repositories.DepartmentRepository
	logger        zerolog.Logger
}

// NewFeeConfigService creates a new fee config service instance
func NewFeeConfigService(
	feeConfigRepo *repositories.FeeConfigRepository,
	studentRepo *repositories.StudentRepository,
	deptRepo *repositories.DepartmentRepository,
	logger zerolog.Logger,
) FeeConfigService {
	return &feeConfigServiceImpl{
		feeConfigRepo: feeConfigRepo,
		studentRepo:   studentRepo,
		deptRepo:      deptRepo,
		logger:        logger,
	}
}

// GetConfig returns the stored configuration document. When nothing has
// been saved yet an empty document is returned; resolution then falls
// back to the baseline everywhere.
func (s *feeConfigServiceImpl) GetConfig(ctx context.Context) (*dto.FeeConfigResponse, error) {
	doc, err := s.feeConfigRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &models.FeeConfigDoc{}
	}
	return &dto.FeeConfigResponse{Config: doc}, nil
}

// UpdateDefault replaces the default fee configuration. Existing locker
// targets keep their snapshot unless ApplyToAllStudents is set, in which
// case every locker is retargeted from the new configuration.
func (s *feeConfigServiceImpl) UpdateDefault(ctx context.Context, req *dto.UpdateFeeConfigRequest, updatedBy string) (*dto.ApplyTargetsResponse, error) {
	doc, err := s.feeConfigRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &models.FeeConfigDoc{}
	}

	doc.Default = req.Config
	doc.UpdatedAt = time.Now()
	doc.UpdatedBy = updatedBy

	if err := s.feeConfigRepo.Set(ctx, doc); err != nil {
		return nil, err
	}

	if !req.ApplyToAllStudents {
		return &dto.ApplyTargetsResponse{}, nil
	}
	return s.applyToAllStudents(ctx, doc)
}

// GetBatchConfig returns the override config of one admission batch.
func (s *feeConfigServiceImpl) GetBatchConfig(ctx context.Context, batch string) (*models.FeeLockerConfig, error) {
	doc, err := s.feeConfigRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Batches == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("no config for batch %s", batch))
	}
	cfg, ok := doc.Batches[batch]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("no config for batch %s", batch))
	}
	return &cfg, nil
}

// UpdateBatchConfig sets the override config of one admission batch.
func (s *feeConfigServiceImpl) UpdateBatchConfig(ctx context.Context, batch string, req *dto.UpdateBatchFeeConfigRequest, updatedBy string) error {
	doc, err := s.feeConfigRepo.Get(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = &models.FeeConfigDoc{}
	}
	if doc.Batches == nil {
		doc.Batches = make(map[string]models.FeeLockerConfig)
	}

	doc.Batches[batch] = req.Config
	doc.UpdatedAt = time.Now()
	doc.UpdatedBy = updatedBy
	return s.feeConfigRepo.Set(ctx, doc)
}

// DeleteBatchConfig removes a batch override. Students of that batch
// resolve against the default config afterwards.
func (s *feeConfigServiceImpl) DeleteBatchConfig(ctx context.Context, batch string, updatedBy string) error {
	doc, err := s.feeConfigRepo.Get(ctx)
	if err != nil {
		return err
	}
	if doc == nil || doc.Batches == nil {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("no config for batch %s", batch))
	}
	if _, ok := doc.Batches[batch]; !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("no config for batch %s", batch))
	}

	delete(doc.Batches, batch)
	doc.UpdatedAt = time.Now()
	doc.UpdatedBy = updatedBy
	return s.feeConfigRepo.Set(ctx, doc)
}

// applyToAllStudents rewrites the stored targets of every year locker
// from a freshly compiled configuration. Transactions are untouched;
// only the target columns change.
func (s *feeConfigServiceImpl) applyToAllStudents(ctx context.Context, doc *models.FeeConfigDoc) (*dto.ApplyTargetsResponse, error) {
	deptPtrs, err := s.deptRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading departments: %w", err)
	}
	departments := make([]models.Department, len(deptPtrs))
	for i, d := range deptPtrs {
		departments[i] = *d
	}
	resolved := fees.BuildConfig(doc, departments)

	students, err := s.studentRepo.GetAllWithLockers(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error loading students: %w", err)
	}

	resp := &dto.ApplyTargetsResponse{}
	for _, student := range students {
		touched := false
		for _, locker := range student.Lockers {
			t := resolved.Resolve(student.Department, locker.Year, student.EntryType, student.Batch)
			if locker.TuitionTarget.Equal(t.Tuition) && locker.UniversityTarget.Equal(t.University) {
				continue
			}
			if err := s.studentRepo.UpdateLockerTargets(ctx, locker.ID, t.Tuition, t.University, locker.OtherTarget); err != nil {
				return nil, err
			}
			resp.LockersUpdated++
			touched = true
		}
		if touched {
			resp.StudentsUpdated++
		}
	}

	s.logger.Info().
		Int("students", resp.StudentsUpdated).
		Int("lockers", resp.LockersUpdated).
		Msg("Rewrote locker targets from fee config")
	return resp, nil
}
