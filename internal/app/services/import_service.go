package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arjunrk/feeledger/internal/app/feeimport"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
	"github.com/arjunrk/feeledger/internal/pkg/sheet"
)

const previewSampleRows = 5

// ImportService defines the interface for bulk spreadsheet operations
type ImportService interface {
	Preview(ctx context.Context, r io.Reader, filename string) (*dto.UploadPreviewResponse, error)
	Import(ctx context.Context, r io.Reader, filename string) (*dto.ImportResponse, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	studentRepo   *repositories.StudentRepository
	deptRepo      *repositories.DepartmentRepository
	feeConfigRepo *repositories.FeeConfigRepository
	logger        zerolog.Logger
}

// NewImportService creates a new import service instance
func NewImportService(
	studentRepo *repositories.StudentRepository,
	deptRepo *repositories.DepartmentRepository,
	feeConfigRepo *repositories.FeeConfigRepository,
	logger zerolog.Logger,
) ImportService {
	return &importServiceImpl{
		studentRepo:   studentRepo,
		deptRepo:      deptRepo,
		feeConfigRepo: feeConfigRepo,
		logger:        logger,
	}
}

// Preview reports how a sheet would be interpreted without importing
// anything: detected type, matched columns and a few sample rows.
func (s *importServiceImpl) Preview(ctx context.Context, r io.Reader, filename string) (*dto.UploadPreviewResponse, error) {
	headerRow, dataRows, err := readSheet(r, filename)
	if err != nil {
		return nil, err
	}

	cols := feeimport.MatchHeaders(headerRow)
	multiYear := feeimport.DetectMultiYear(headerRow)

	resp := &dto.UploadPreviewResponse{
		Type:     string(feeimport.Classify(cols, multiYear)),
		Columns:  cols,
		RowCount: len(dataRows),
	}
	for _, yc := range multiYear {
		resp.MultiYearPairs = append(resp.MultiYearPairs, yc.Year)
	}
	for i := 0; i < len(dataRows) && i < previewSampleRows; i++ {
		resp.Sample = append(resp.Sample, dataRows[i])
	}
	return resp, nil
}

// Import normalizes a sheet into students, lockers and transactions and
// persists them. Rows referencing known hall tickets merge into the
// stored student; row errors are reported alongside the imported rows,
// never rolling the batch back.
func (s *importServiceImpl) Import(ctx context.Context, r io.Reader, filename string) (*dto.ImportResponse, error) {
	headerRow, dataRows, err := readSheet(r, filename)
	if err != nil {
		return nil, err
	}

	existing, err := s.loadExisting(ctx, headerRow, dataRows)
	if err != nil {
		return nil, err
	}

	targets, err := loadResolvedConfig(ctx, s.feeConfigRepo, s.deptRepo)
	if err != nil {
		return nil, err
	}

	result := feeimport.ImportSheet(headerRow, dataRows, feeimport.Options{
		Existing: existing,
		Targets:  targets,
	})
	if result.Type == feeimport.SheetUndetected {
		return nil, apperrors.ErrUndetectedSheet
	}

	resp := &dto.ImportResponse{
		Type:   string(result.Type),
		Total:  len(dataRows),
		Errors: result.Errors,
	}
	for _, student := range result.Students {
		merged := student.ID != 0
		if err := s.studentRepo.Save(ctx, student); err != nil {
			resp.Errors = append(resp.Errors,
				fmt.Sprintf("Failed to save student %s: %v", student.HallTicketNo, err))
			continue
		}
		resp.Processed++
		if merged {
			resp.Merged++
		} else {
			resp.Created++
		}
	}

	s.logger.Info().
		Str("file", filename).
		Str("type", resp.Type).
		Int("total", resp.Total).
		Int("created", resp.Created).
		Int("merged", resp.Merged).
		Int("errors", len(resp.Errors)).
		Msg("Bulk import finished")
	return resp, nil
}

// loadExisting fetches already-persisted students referenced by the
// sheet's roll number column, keyed by lowercase hall ticket number.
func (s *importServiceImpl) loadExisting(ctx context.Context, headerRow []string, dataRows [][]string) (map[string]*models.Student, error) {
	cols := feeimport.MatchHeaders(headerRow)
	rollCol, ok := cols[feeimport.FieldRollNo]
	if !ok {
		return nil, nil
	}

	seen := make(map[string]bool)
	var rolls []string
	for _, row := range dataRows {
		if rollCol >= len(row) {
			continue
		}
		roll := strings.TrimSpace(row[rollCol])
		if roll == "" || seen[strings.ToLower(roll)] {
			continue
		}
		seen[strings.ToLower(roll)] = true
		rolls = append(rolls, roll)
	}
	if len(rolls) == 0 {
		return nil, nil
	}

	students, err := s.studentRepo.GetByHallTickets(ctx, rolls)
	if err != nil {
		return nil, fmt.Errorf("error loading existing students: %w", err)
	}

	existing := make(map[string]*models.Student, len(students))
	for _, st := range students {
		existing[strings.ToLower(st.HallTicketNo)] = st
	}
	return existing, nil
}

// readSheet parses an uploaded file into a header row and data rows.
func readSheet(r io.Reader, filename string) ([]string, [][]string, error) {
	rows, err := sheet.ReadRows(r, filename)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, apperrors.ErrEmptySheet
	}
	return rows[0], rows[1:], nil
}
