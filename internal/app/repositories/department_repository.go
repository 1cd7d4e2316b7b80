package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetAll returns every department ordered by code.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT code, name, course_type, duration_years, fee_group
		FROM departments
		ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d := &models.Department{}
		if err := rows.Scan(&d.Code, &d.Name, &d.CourseType, &d.DurationYears, &d.FeeGroup); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetByCode returns a single department by its canonical code.
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	query := `
		SELECT code, name, course_type, duration_years, fee_group
		FROM departments
		WHERE code = $1`

	d := &models.Department{}
	err := r.db.QueryRow(ctx, query, code).Scan(&d.Code, &d.Name, &d.CourseType, &d.DurationYears, &d.FeeGroup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return d, nil
}

// Upsert inserts a department or updates it when the code already exists.
// Used by seeding and by fee group reassignment.
func (r *DepartmentRepository) Upsert(ctx context.Context, d *models.Department) error {
	query := `
		INSERT INTO departments (code, name, course_type, duration_years, fee_group)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			course_type = EXCLUDED.course_type,
			duration_years = EXCLUDED.duration_years,
			fee_group = EXCLUDED.fee_group`

	_, err := r.db.Exec(ctx, query, d.Code, d.Name, d.CourseType, d.DurationYears, d.FeeGroup)
	return err
}
