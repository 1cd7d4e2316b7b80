package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
)

// RemarkRepository handles database operations for student remarks
type RemarkRepository struct {
	db *pgxpool.Pool
}

// NewRemarkRepository creates a new RemarkRepository
func NewRemarkRepository(db *pgxpool.Pool) *RemarkRepository {
	return &RemarkRepository{db: db}
}

// Add attaches a remark to a student.
func (r *RemarkRepository) Add(ctx context.Context, remark *models.StudentRemark) error {
	query := `
		INSERT INTO student_remarks (student_id, text, author)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, remark.StudentID, remark.Text, remark.Author).
		Scan(&remark.ID, &remark.CreatedAt)
	if err != nil {
		return fmt.Errorf("error adding remark: %w", err)
	}
	return nil
}

// Delete removes a remark. The student ID guards against deleting a
// remark through another student's URL.
func (r *RemarkRepository) Delete(ctx context.Context, studentID, remarkID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM student_remarks WHERE id = $1 AND student_id = $2`, remarkID, studentID)
	if err != nil {
		return fmt.Errorf("error deleting remark: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRemarkNotFound
	}
	return nil
}
