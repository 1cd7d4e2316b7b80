package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// DepartmentService defines the interface for department reference data
type DepartmentService interface {
	GetAllDepartments(ctx context.Context) ([]*models.Department, error)
	GetDepartmentByCode(ctx context.Context, code string) (*models.Department, error)
}

// departmentServiceImpl implements the DepartmentService interface
type departmentServiceImpl struct {
	deptRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(deptRepo *repositories.DepartmentRepository) DepartmentService {
	return &departmentServiceImpl{deptRepo: deptRepo}
}

// GetAllDepartments retrieves all departments
func (s *departmentServiceImpl) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.deptRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// GetDepartmentByCode retrieves one department. Raw input is normalized
// first, so "Computer Science" and "cse" both resolve to CSE.
func (s *departmentServiceImpl) GetDepartmentByCode(ctx context.Context, code string) (*models.Department, error) {
	dept, err := s.deptRepo.GetByCode(ctx, fees.Normalize(code))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return dept, nil
}
