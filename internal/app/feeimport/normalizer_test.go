package feeimport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// sequentialIDs returns a deterministic id generator for tests.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tx-%03d", n)
	}
}

func TestImportSheetEndToEnd(t *testing.T) {
	header := []string{"Roll No", "Student Name", "Department", "Tuition Fee Challan Date", "Tuition Fee", "University Fee"}
	rows := [][]string{
		{"24-CSE-001", "JOHN", "CSE", "01.09.2025", "100000", "12650"},
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	if res.Type != SheetFee {
		t.Fatalf("sheet type = %s, want fee", res.Type)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Students) != 1 {
		t.Fatalf("got %d students, want 1", len(res.Students))
	}

	s := res.Students[0]
	if s.HallTicketNo != "24-CSE-001" || s.Name != "JOHN" || s.Department != "CSE" {
		t.Errorf("student = %+v", s)
	}
	if s.AdmissionYear != 2024 {
		t.Errorf("admission year = %d, want 2024 (from roll prefix)", s.AdmissionYear)
	}
	if len(s.Lockers) != 1 || s.Lockers[0].Year != 1 {
		t.Fatalf("lockers = %+v, want one locker at year 1", s.Lockers)
	}

	locker := s.Lockers[0]
	if len(locker.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(locker.Transactions))
	}
	total := decimal.Zero
	for _, tx := range locker.Transactions {
		if tx.Status != models.StatusPending {
			t.Errorf("transaction %s status = %s, want PENDING", tx.ID, tx.Status)
		}
		if tx.FinancialYear != "2025-26" {
			t.Errorf("transaction %s financial year = %q, want 2025-26", tx.ID, tx.FinancialYear)
		}
		if tx.AcademicYear != "2024-25" {
			t.Errorf("transaction %s academic year = %q, want 2024-25", tx.ID, tx.AcademicYear)
		}
		total = total.Add(tx.Amount)
	}
	if !total.Equal(decimal.NewFromInt(112650)) {
		t.Errorf("transaction total = %s, want 112650", total)
	}
}

func TestImportSheetPartialBatchTolerance(t *testing.T) {
	header := []string{"Roll No", "Student Name", "Department"}
	var rows [][]string
	for i := 0; i < 7; i++ {
		rows = append(rows, []string{fmt.Sprintf("24-CSE-%03d", i+1), "STUDENT", "CSE"})
	}
	// Rows 3 and 6 of the sheet (indexes 1 and 4) are malformed.
	rows[1][0] = ""
	rows[4][1] = ""

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	if res.Type != SheetStudent {
		t.Fatalf("sheet type = %s, want student", res.Type)
	}
	if len(res.Students) != 5 {
		t.Errorf("got %d students, want 5", len(res.Students))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(res.Errors), res.Errors)
	}
	// Row numbers are 1-indexed against the sheet, counting the header.
	if !strings.HasPrefix(res.Errors[0], "Row 3: Missing roll number") {
		t.Errorf("first error = %q", res.Errors[0])
	}
	if !strings.HasPrefix(res.Errors[1], "Row 6: Missing student name") {
		t.Errorf("second error = %q", res.Errors[1])
	}
}

func TestImportSheetDuplicateRollInFile(t *testing.T) {
	header := []string{"Roll No", "Student Name", "Department"}
	rows := [][]string{
		{"24-CSE-001", "FIRST", "CSE"},
		{"24-cse-001", "SECOND", "CSE"}, // case-insensitive duplicate
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	if len(res.Students) != 1 {
		t.Fatalf("got %d students, want 1", len(res.Students))
	}
	if res.Students[0].Name != "FIRST" {
		t.Errorf("first occurrence must win, got %q", res.Students[0].Name)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Duplicate roll number") {
		t.Errorf("errors = %v, want one duplicate-roll error", res.Errors)
	}
}

func TestImportSheetMergesIntoExistingStudent(t *testing.T) {
	existing := &models.Student{
		HallTicketNo: "24-CSE-001",
		Name:         "JOHN",
		Department:   "CSE",
		CurrentYear:  2,
		Lockers: []*models.YearLocker{
			{Year: 1, Transactions: []*models.FeeTransaction{{ID: "persisted-1", Status: models.StatusApproved}}},
		},
	}

	header := []string{"Roll No", "Tuition Fee", "Challan No", "Payment Date"}
	rows := [][]string{
		{"24-CSE-001", "50000", "CH-9", "15.04.2025"},
	}

	res := ImportSheet(header, rows, Options{
		Existing: map[string]*models.Student{"24-cse-001": existing},
		NewID:    sequentialIDs(),
	})

	if res.Type != SheetFee {
		t.Fatalf("sheet type = %s, want fee", res.Type)
	}
	if len(res.Students) != 1 || res.Students[0] != existing {
		t.Fatal("row must merge into the existing student, not replace it")
	}
	// Fee row lands on the student's current year; year-1 transactions
	// are untouched.
	if locker := existing.LockerForYear(2); locker == nil || len(locker.Transactions) != 1 {
		t.Fatalf("year 2 locker = %+v, want one new transaction", locker)
	}
	if locker := existing.LockerForYear(1); len(locker.Transactions) != 1 || locker.Transactions[0].ID != "persisted-1" {
		t.Error("persisted year 1 transactions were disturbed")
	}
}

func TestImportSheetMultiYear(t *testing.T) {
	header := []string{
		"Roll No", "Student Name", "Current Year",
		"1st Year - Tuition", "1st Year - University",
		"2nd Year - Tuition", "2nd Year - University",
		"3rd Year - Tuition", "3rd Year - University",
	}
	rows := [][]string{
		// Year 1 paid fully, year 2 partially, year 3 untouched but
		// within the declared current year.
		{"23-CSE-007", "PRIYA", "3", "95000", "12650", "95000", "", "", ""},
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	if res.Type != SheetMultiYear {
		t.Fatalf("sheet type = %s, want multi-year", res.Type)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	s := res.Students[0]
	if len(s.Lockers) != 3 {
		t.Fatalf("got %d lockers, want 3 (year 3 kept: within current year)", len(s.Lockers))
	}
	if n := len(s.LockerForYear(1).Transactions); n != 2 {
		t.Errorf("year 1 transactions = %d, want 2", n)
	}
	if n := len(s.LockerForYear(2).Transactions); n != 1 {
		t.Errorf("year 2 transactions = %d, want 1", n)
	}
	if n := len(s.LockerForYear(3).Transactions); n != 0 {
		t.Errorf("year 3 transactions = %d, want 0", n)
	}
}

func TestImportSheetMultiYearDropsFutureEmptyYears(t *testing.T) {
	header := []string{
		"Roll No", "Current Year",
		"1st Year - Tuition", "2nd Year - Tuition", "3rd Year - Tuition",
	}
	rows := [][]string{
		{"24-CSE-001", "1", "95000", "", ""},
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	s := res.Students[0]
	if len(s.Lockers) != 1 || s.Lockers[0].Year != 1 {
		t.Errorf("lockers = %+v, want only year 1 (empty future years dropped)", s.Lockers)
	}
}

func TestImportSheetInvalidAmountFailsOnlyThatRow(t *testing.T) {
	header := []string{"Roll No", "Tuition Fee"}
	rows := [][]string{
		{"24-CSE-001", "1,00,000"}, // indian digit grouping is fine
		{"24-CSE-002", "ninety"},
		{"24-CSE-003", "90000"},
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	if len(res.Students) != 2 {
		t.Errorf("got %d students, want 2", len(res.Students))
	}
	if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "Row 3:") {
		t.Errorf("errors = %v, want a single Row 3 amount error", res.Errors)
	}
	if amt := res.Students[0].Lockers[0].Transactions[0].Amount; !amt.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("comma-grouped amount parsed as %s, want 100000", amt)
	}
}

func TestImportSheetUndetected(t *testing.T) {
	res := ImportSheet([]string{"Alpha", "Beta"}, [][]string{{"1", "2"}}, Options{})
	if res.Type != SheetUndetected {
		t.Fatalf("sheet type = %s, want undetected", res.Type)
	}
	if len(res.Students) != 0 || len(res.Errors) != 1 {
		t.Errorf("undetected sheets must process no rows: students=%d errors=%v", len(res.Students), res.Errors)
	}
}

func TestImportSheetLateralStudentSkipsYearOne(t *testing.T) {
	header := []string{"Roll No", "Student Name", "Department", "Entry Type", "Current Year"}
	rows := [][]string{
		{"25-MECH-301", "RAVI", "Mechanical", "Lateral", "2"},
	}

	res := ImportSheet(header, rows, Options{NewID: sequentialIDs()})

	s := res.Students[0]
	if s.EntryType != models.EntryLateral {
		t.Fatalf("entry type = %s, want LATERAL", s.EntryType)
	}
	if s.Department != "MECH" {
		t.Errorf("department = %q, want MECH (normalized)", s.Department)
	}
	if len(s.Lockers) != 1 || s.Lockers[0].Year != 2 {
		t.Errorf("lockers = %+v, want only year 2 (no year-1 locker for lateral entry)", s.Lockers)
	}
}
