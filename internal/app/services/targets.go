package services

import (
	"context"
	"fmt"
	"math"

	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
)

// loadResolvedConfig compiles the stored fee configuration against the
// department reference data. A missing config document compiles to
// baseline targets everywhere.
func loadResolvedConfig(ctx context.Context, feeConfigRepo *repositories.FeeConfigRepository, deptRepo *repositories.DepartmentRepository) (*fees.ResolvedConfig, error) {
	doc, err := feeConfigRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading fee config: %w", err)
	}

	deptPtrs, err := deptRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading departments: %w", err)
	}
	departments := make([]models.Department, len(deptPtrs))
	for i, d := range deptPtrs {
		departments[i] = *d
	}

	return fees.BuildConfig(doc, departments), nil
}

// admissionLockers opens the year lockers a student owes on admission,
// one per year of study up to the current year. Lateral entrants start
// at year 2. Targets are snapshotted from the resolved configuration.
func admissionLockers(student *models.Student, targets *fees.ResolvedConfig) []*models.YearLocker {
	start := 1
	if student.EntryType == models.EntryLateral {
		start = 2
	}

	var lockers []*models.YearLocker
	for year := start; year <= student.CurrentYear; year++ {
		t := targets.Resolve(student.Department, year, student.EntryType, student.Batch)
		lockers = append(lockers, &models.YearLocker{
			Year:             year,
			TuitionTarget:    t.Tuition,
			UniversityTarget: t.University,
		})
	}
	return lockers
}

// buildPagination derives pagination metadata from a total row count.
func buildPagination(page, pageSize int, total int64) dto.PaginationInfo {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  total,
	}
}
