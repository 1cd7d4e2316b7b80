package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
	"github.com/arjunrk/feeledger/internal/pkg/logger"
)

// StudentFilter narrows student listing queries. Zero values mean "no filter".
type StudentFilter struct {
	Department string
	Batch      string
	Year       int
	Search     string
}

// StudentRepository handles database operations for students and their
// year lockers. Lockers and transactions are loaded and saved together
// with the student they belong to.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// isUniqueViolation checks if the error is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const studentColumns = `id, hall_ticket_no, name, father_name, department, course,
	admission_category, admission_year, batch, current_year, entry_type, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID,
		&s.HallTicketNo,
		&s.Name,
		&s.FatherName,
		&s.Department,
		&s.Course,
		&s.AdmissionCategory,
		&s.AdmissionYear,
		&s.Batch,
		&s.CurrentYear,
		&s.EntryType,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves students with filtering and pagination. Lockers are not
// loaded here; use GetByHallTicket for the full aggregate.
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, page, pageSize int) ([]*models.Student, int64, error) {
	qb := r.sb.Select(
		"id", "hall_ticket_no", "name", "father_name", "department", "course",
		"admission_category", "admission_year", "batch", "current_year", "entry_type", "created_at",
		"COUNT(*) OVER() AS total_count",
	).From("students")

	if filter.Department != "" {
		qb = qb.Where(squirrel.Eq{"department": filter.Department})
	}
	if filter.Batch != "" {
		qb = qb.Where(squirrel.Eq{"batch": filter.Batch})
	}
	if filter.Year > 0 {
		qb = qb.Where(squirrel.Eq{"current_year": filter.Year})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"hall_ticket_no": pattern},
		})
	}

	if page < 1 {
		page = 1
	}
	qb = qb.OrderBy("hall_ticket_no ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.HallTicketNo, &s.Name, &s.FatherName, &s.Department, &s.Course,
			&s.AdmissionCategory, &s.AdmissionYear, &s.Batch, &s.CurrentYear, &s.EntryType, &s.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// GetByHallTicket retrieves a student by hall ticket number (case
// insensitive) together with lockers, transactions and remarks.
func (r *StudentRepository) GetByHallTicket(ctx context.Context, hallTicketNo string) (*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE LOWER(hall_ticket_no) = LOWER($1)`

	s, err := scanStudent(r.db.QueryRow(ctx, query, hallTicketNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by hall ticket: %w", err)
	}

	lockers, err := r.loadLockers(ctx, []int64{s.ID})
	if err != nil {
		return nil, err
	}
	s.Lockers = lockers[s.ID]

	remarks, err := r.loadRemarks(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Remarks = remarks

	return s, nil
}

// GetByHallTickets retrieves the students whose hall ticket numbers
// appear in the given list, matched case insensitively, with lockers
// and transactions loaded. Missing numbers are simply absent from the
// result.
func (r *StudentRepository) GetByHallTickets(ctx context.Context, hallTicketNos []string) ([]*models.Student, error) {
	if len(hallTicketNos) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(hallTicketNos))
	for i, h := range hallTicketNos {
		lowered[i] = strings.ToLower(h)
	}

	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE LOWER(hall_ticket_no) = ANY($1)
		ORDER BY hall_ticket_no`

	rows, err := r.db.Query(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("error querying students by hall tickets: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var ids []int64
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lockers, err := r.loadLockers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range students {
		s.Lockers = lockers[s.ID]
	}

	return students, nil
}

// GetAllWithLockers loads every student (optionally restricted to one
// department) with lockers and transactions. Used by dues reporting and
// by fee config rewrites.
func (r *StudentRepository) GetAllWithLockers(ctx context.Context, department string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []interface{}{}
	if department != "" {
		query += ` WHERE department = $1`
		args = append(args, department)
	}
	query += ` ORDER BY hall_ticket_no`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var ids []int64
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lockers, err := r.loadLockers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range students {
		s.Lockers = lockers[s.ID]
	}

	return students, nil
}

// Create inserts a new student together with any lockers and
// transactions attached to it.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO students (hall_ticket_no, name, father_name, department, course,
			admission_category, admission_year, batch, current_year, entry_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, query,
		student.HallTicketNo, student.Name, student.FatherName, student.Department, student.Course,
		student.AdmissionCategory, student.AdmissionYear, student.Batch, student.CurrentYear, student.EntryType,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrHallTicketAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	if err := r.saveLockers(ctx, tx, student); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update rewrites the scalar fields of a student. Lockers are managed
// through Save.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students SET
			name = $2, father_name = $3, department = $4, course = $5,
			admission_category = $6, admission_year = $7, batch = $8,
			current_year = $9, entry_type = $10
		WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query,
		student.ID,
		student.Name, student.FatherName, student.Department, student.Course,
		student.AdmissionCategory, student.AdmissionYear, student.Batch,
		student.CurrentYear, student.EntryType,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Save upserts a student and all its lockers and transactions in a
// single database transaction. New rows are inserted, existing lockers
// keep their identity, and transactions already present are left
// untouched. This is the persistence half of an import merge.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if student.ID == 0 {
		query := `
			INSERT INTO students (hall_ticket_no, name, father_name, department, course,
				admission_category, admission_year, batch, current_year, entry_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (hall_ticket_no) DO UPDATE SET
				name = EXCLUDED.name,
				current_year = GREATEST(students.current_year, EXCLUDED.current_year)
			RETURNING id, created_at`

		err = tx.QueryRow(ctx, query,
			student.HallTicketNo, student.Name, student.FatherName, student.Department, student.Course,
			student.AdmissionCategory, student.AdmissionYear, student.Batch, student.CurrentYear, student.EntryType,
		).Scan(&student.ID, &student.CreatedAt)
		if err != nil {
			return fmt.Errorf("error upserting student: %w", err)
		}
	} else {
		query := `
			UPDATE students SET
				name = $2, father_name = $3, department = $4, course = $5,
				admission_category = $6, admission_year = $7, batch = $8,
				current_year = $9, entry_type = $10
			WHERE id = $1`

		if _, err := tx.Exec(ctx, query,
			student.ID,
			student.Name, student.FatherName, student.Department, student.Course,
			student.AdmissionCategory, student.AdmissionYear, student.Batch,
			student.CurrentYear, student.EntryType,
		); err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
	}

	if err := r.saveLockers(ctx, tx, student); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateLockerTargets rewrites the stored fee targets of a single locker.
func (r *StudentRepository) UpdateLockerTargets(ctx context.Context, lockerID int64, tuition, university, other decimal.Decimal) error {
	query := `
		UPDATE year_lockers
		SET tuition_target = $2, university_target = $3, other_target = $4
		WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, lockerID, tuition, university, other)
	if err != nil {
		return fmt.Errorf("error updating locker targets: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a student by hall ticket number. Lockers, transactions
// and remarks cascade.
func (r *StudentRepository) Delete(ctx context.Context, hallTicketNo string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM students WHERE LOWER(hall_ticket_no) = LOWER($1)`, hallTicketNo)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// saveLockers upserts the lockers of a student and inserts any
// transactions the database has not seen yet. The (student_id, year)
// pair identifies a locker; transaction IDs make inserts idempotent.
func (r *StudentRepository) saveLockers(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	lockerQuery := `
		INSERT INTO year_lockers (student_id, year, tuition_target, university_target, other_target)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, year) DO UPDATE SET
			tuition_target = EXCLUDED.tuition_target,
			university_target = EXCLUDED.university_target,
			other_target = EXCLUDED.other_target
		RETURNING id`

	txnQuery := `
		INSERT INTO fee_transactions (id, locker_id, hall_ticket_no, fee_type, amount,
			challan_no, payment_mode, payment_date, academic_year, financial_year,
			status, approved_by, approval_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`

	for _, locker := range student.Lockers {
		locker.StudentID = student.ID
		err := tx.QueryRow(ctx, lockerQuery,
			locker.StudentID, locker.Year,
			locker.TuitionTarget, locker.UniversityTarget, locker.OtherTarget,
		).Scan(&locker.ID)
		if err != nil {
			return fmt.Errorf("error upserting year locker: %w", err)
		}

		for _, t := range locker.Transactions {
			t.LockerID = locker.ID
			if t.HallTicketNo == "" {
				t.HallTicketNo = student.HallTicketNo
			}
			if _, err := tx.Exec(ctx, txnQuery,
				t.ID, t.LockerID, t.HallTicketNo, t.FeeType, t.Amount,
				t.ChallanNo, t.PaymentMode, t.PaymentDate, t.AcademicYear, t.FinancialYear,
				t.Status, t.ApprovedBy, t.ApprovalDate,
			); err != nil {
				return fmt.Errorf("error inserting transaction: %w", err)
			}
		}
	}

	return nil
}

// loadLockers fetches the lockers of the given students keyed by
// student ID, each with its transactions attached in creation order.
func (r *StudentRepository) loadLockers(ctx context.Context, studentIDs []int64) (map[int64][]*models.YearLocker, error) {
	result := make(map[int64][]*models.YearLocker)
	if len(studentIDs) == 0 {
		return result, nil
	}

	lockerQuery := `
		SELECT id, student_id, year, tuition_target, university_target, other_target
		FROM year_lockers
		WHERE student_id = ANY($1)
		ORDER BY student_id, year`

	rows, err := r.db.Query(ctx, lockerQuery, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying year lockers: %w", err)
	}
	defer rows.Close()

	byLockerID := make(map[int64]*models.YearLocker)
	var lockerIDs []int64
	for rows.Next() {
		l := &models.YearLocker{}
		if err := rows.Scan(&l.ID, &l.StudentID, &l.Year,
			&l.TuitionTarget, &l.UniversityTarget, &l.OtherTarget); err != nil {
			return nil, fmt.Errorf("error scanning year locker row: %w", err)
		}
		result[l.StudentID] = append(result[l.StudentID], l)
		byLockerID[l.ID] = l
		lockerIDs = append(lockerIDs, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lockerIDs) == 0 {
		return result, nil
	}

	txnQuery := `
		SELECT id, locker_id, hall_ticket_no, fee_type, amount, challan_no,
			payment_mode, payment_date, academic_year, financial_year,
			status, approved_by, approval_date, created_at
		FROM fee_transactions
		WHERE locker_id = ANY($1)
		ORDER BY created_at, id`

	txnRows, err := r.db.Query(ctx, txnQuery, lockerIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer txnRows.Close()

	for txnRows.Next() {
		t := &models.FeeTransaction{}
		if err := txnRows.Scan(&t.ID, &t.LockerID, &t.HallTicketNo, &t.FeeType, &t.Amount,
			&t.ChallanNo, &t.PaymentMode, &t.PaymentDate, &t.AcademicYear, &t.FinancialYear,
			&t.Status, &t.ApprovedBy, &t.ApprovalDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		locker := byLockerID[t.LockerID]
		if locker == nil {
			logger.Warn().Str("transactionID", t.ID).Int64("lockerID", t.LockerID).
				Msg("Transaction references unknown locker, skipping")
			continue
		}
		locker.Transactions = append(locker.Transactions, t)
	}
	return result, txnRows.Err()
}

// loadRemarks fetches the remarks attached to a student, newest first.
func (r *StudentRepository) loadRemarks(ctx context.Context, studentID int64) ([]*models.StudentRemark, error) {
	query := `
		SELECT id, student_id, text, author, created_at
		FROM student_remarks
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying remarks: %w", err)
	}
	defer rows.Close()

	var remarks []*models.StudentRemark
	for rows.Next() {
		rem := &models.StudentRemark{}
		if err := rows.Scan(&rem.ID, &rem.StudentID, &rem.Text, &rem.Author, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning remark row: %w", err)
		}
		remarks = append(remarks, rem)
	}
	return remarks, rows.Err()
}
