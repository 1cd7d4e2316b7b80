package feeimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/fees"
	"github.com/arjunrk/feeledger/internal/app/models"
)

// Options configures a bulk import run.
type Options struct {
	// Existing maps lowercase hall-ticket numbers to already-persisted
	// students. Fee and combined rows referencing one merge into it via
	// the locker reconciler instead of replacing it.
	Existing map[string]*models.Student
	// Targets resolves locker targets. Nil degrades to the baseline.
	Targets *fees.ResolvedConfig
	// NewID mints transaction ids; defaults to random UUIDs.
	NewID func() string
}

// Result is the outcome of normalizing one sheet. Partial success is
// expected and correct: a batch of 500 rows with 3 malformed rows
// imports 497 and reports 3 errors.
type Result struct {
	Type     SheetType      `json:"type"`
	Columns  map[string]int `json:"columns"`
	Students []*models.Student
	Errors   []string `json:"errors"`
}

// ImportSheet transforms a 2-D string grid into student/locker/
// transaction drafts. Row errors are accumulated, never thrown; one
// row's failure does not abort the batch. Row numbers in errors are
// 1-indexed against the original sheet, counting the header row.
func ImportSheet(headerRow []string, dataRows [][]string, opts Options) *Result {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Targets == nil {
		opts.Targets = fees.BuildConfig(nil, nil)
	}

	cols := MatchHeaders(headerRow)
	multiYear := DetectMultiYear(headerRow)
	res := &Result{Type: Classify(cols, multiYear), Columns: cols}

	if res.Type == SheetUndetected {
		res.Errors = append(res.Errors, "Could not detect sheet type: headers match no known template")
		return res
	}

	im := &importer{
		cols:      cols,
		multiYear: multiYear,
		opts:      opts,
		byRoll:    make(map[string]*models.Student),
		seenRolls: make(map[string]bool),
	}

	for i, row := range dataRows {
		rowNo := i + 2
		switch res.Type {
		case SheetStudent:
			im.studentRow(rowNo, row)
		case SheetFee:
			im.feeRow(rowNo, row, false)
		case SheetCombined:
			im.feeRow(rowNo, row, true)
		case SheetMultiYear:
			im.multiYearRow(rowNo, row)
		}
	}

	res.Students = im.students
	res.Errors = append(res.Errors, im.errors...)
	return res
}

type importer struct {
	cols      map[string]int
	multiYear []YearColumns
	opts      Options
	students  []*models.Student
	byRoll    map[string]*models.Student
	seenRolls map[string]bool
	errors    []string
}

func (im *importer) errorf(rowNo int, format string, args ...interface{}) {
	im.errors = append(im.errors, fmt.Sprintf("Row %d: %s", rowNo, fmt.Sprintf(format, args...)))
}

func (im *importer) cell(row []string, field string) string {
	col, ok := im.cols[field]
	if !ok || col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// studentRow handles student-only sheets. A roll number already seen
// earlier in the same file is an identity conflict: the first
// occurrence wins, later ones are skipped with a row error.
func (im *importer) studentRow(rowNo int, row []string) {
	roll := im.cell(row, FieldRollNo)
	if roll == "" {
		im.errorf(rowNo, "Missing roll number")
		return
	}
	if im.cell(row, FieldStudentName) == "" {
		im.errorf(rowNo, "Missing student name")
		return
	}
	key := strings.ToLower(roll)
	if im.seenRolls[key] {
		im.errorf(rowNo, "Duplicate roll number %q", roll)
		return
	}
	im.seenRolls[key] = true

	student := im.buildStudent(roll, row)
	student.Lockers = im.admissionLockers(student)
	im.register(key, student)
}

// feeRow handles fee-only and combined sheets. Rows referencing a known
// student merge through the reconciler.
func (im *importer) feeRow(rowNo int, row []string, combined bool) {
	roll := im.cell(row, FieldRollNo)
	if roll == "" {
		im.errorf(rowNo, "Missing roll number")
		return
	}
	if combined && im.cell(row, FieldStudentName) == "" {
		im.errorf(rowNo, "Missing student name")
		return
	}

	key := strings.ToLower(roll)
	student, known := im.byRoll[key]
	if !known {
		if existing, ok := im.opts.Existing[key]; ok {
			student = existing
			known = true
		}
	}
	if student == nil {
		student = im.buildStudent(roll, row)
	}

	year := im.parseYear(im.cell(row, FieldCurrentYear), student.CurrentYear)
	lockers, err := im.feeLockers(row, student, year)
	if err != nil {
		im.errorf(rowNo, "%s", err.Error())
		return
	}

	if known {
		student.Lockers = fees.Reconcile(student.Lockers, lockers)
		im.register(key, student)
		return
	}
	student.Lockers = fees.Reconcile(nil, lockers)
	im.register(key, student)
}

// multiYearRow synthesizes one locker per detected year column pair. A
// locker is kept only when it holds a nonzero amount or its year is
// within the student's declared current year.
func (im *importer) multiYearRow(rowNo int, row []string) {
	roll := im.cell(row, FieldRollNo)
	if roll == "" {
		im.errorf(rowNo, "Missing roll number")
		return
	}

	key := strings.ToLower(roll)
	student, known := im.byRoll[key]
	if !known {
		if existing, ok := im.opts.Existing[key]; ok {
			student = existing
			known = true
		}
	}
	if student == nil {
		student = im.buildStudent(roll, row)
	}

	paymentDate := NormalizeDate(im.cell(row, FieldPaymentDate))
	currentYear := im.parseYear(im.cell(row, FieldCurrentYear), student.CurrentYear)

	var lockers []*models.YearLocker
	for _, yc := range im.multiYear {
		tuition, err := parseAmount(cellAt(row, yc.TuitionCol))
		if err != nil {
			im.errorf(rowNo, "Invalid tuition amount %q for year %d", cellAt(row, yc.TuitionCol), yc.Year)
			return
		}
		university, err := parseAmount(cellAt(row, yc.UniversityCol))
		if err != nil {
			im.errorf(rowNo, "Invalid university amount %q for year %d", cellAt(row, yc.UniversityCol), yc.Year)
			return
		}

		hasAmount := tuition.IsPositive() || university.IsPositive()
		if !hasAmount && yc.Year > currentYear {
			continue
		}

		locker := im.newLocker(student, yc.Year)
		if tuition.IsPositive() {
			locker.Transactions = append(locker.Transactions,
				im.newTransaction(student, yc.Year, models.FeeTuition, tuition, row, paymentDate))
		}
		if university.IsPositive() {
			locker.Transactions = append(locker.Transactions,
				im.newTransaction(student, yc.Year, models.FeeUniversity, university, row, paymentDate))
		}
		lockers = append(lockers, locker)
	}

	if known {
		student.Lockers = fees.Reconcile(student.Lockers, lockers)
	} else {
		student.Lockers = fees.Reconcile(nil, lockers)
	}
	im.register(key, student)
}

// register records a touched student exactly once in output order.
func (im *importer) register(key string, student *models.Student) {
	if _, ok := im.byRoll[key]; ok {
		return
	}
	im.byRoll[key] = student
	im.students = append(im.students, student)
}

// buildStudent assembles the student draft from identity columns.
// Unknown departments pass through the classifier unchanged.
func (im *importer) buildStudent(roll string, row []string) *models.Student {
	dept := fees.Normalize(im.cell(row, FieldDepartment))
	entry := parseEntryType(im.cell(row, FieldEntryType))
	admissionYear := im.admissionYear(row, roll)
	duration := fees.ProgramDuration(dept, nil)

	batch := im.cell(row, FieldBatch)
	if batch == "" && admissionYear > 0 {
		batch = fmt.Sprintf("%d-%02d", admissionYear, (admissionYear+duration)%100)
	}

	course := im.cell(row, FieldCourse)
	if course == "" {
		course = string(models.CourseBE)
		if fees.IsMEProgram(dept) {
			course = string(models.CourseME)
		}
	}

	defaultYear := 1
	if entry == models.EntryLateral {
		defaultYear = 2
	}

	return &models.Student{
		HallTicketNo:      roll,
		Name:              im.cell(row, FieldStudentName),
		FatherName:        im.cell(row, FieldFatherName),
		Department:        dept,
		Course:            course,
		AdmissionCategory: im.cell(row, FieldAdmissionCategory),
		AdmissionYear:     admissionYear,
		Batch:             batch,
		CurrentYear:       im.parseYear(im.cell(row, FieldCurrentYear), defaultYear),
		EntryType:         entry,
	}
}

// admissionLockers creates empty lockers up to the current year of
// study with resolved targets. Lateral entrants carry no year-1 locker.
func (im *importer) admissionLockers(student *models.Student) []*models.YearLocker {
	start := 1
	if student.EntryType == models.EntryLateral {
		start = 2
	}
	var lockers []*models.YearLocker
	for year := start; year <= student.CurrentYear; year++ {
		lockers = append(lockers, im.newLocker(student, year))
	}
	return lockers
}

// feeLockers builds the single locker a fee/combined row contributes.
func (im *importer) feeLockers(row []string, student *models.Student, year int) ([]*models.YearLocker, error) {
	paymentDate := NormalizeDate(im.cell(row, FieldPaymentDate))

	amounts := []struct {
		field   string
		feeType models.FeeType
	}{
		{FieldTuitionFee, models.FeeTuition},
		{FieldUniversityFee, models.FeeUniversity},
		{FieldOtherFee, models.FeeOther},
	}

	locker := im.newLocker(student, year)
	for _, a := range amounts {
		cell := im.cell(row, a.field)
		amount, err := parseAmount(cell)
		if err != nil {
			return nil, fmt.Errorf("Invalid %s amount %q", a.feeType, cell)
		}
		if amount.IsPositive() {
			locker.Transactions = append(locker.Transactions,
				im.newTransaction(student, year, a.feeType, amount, row, paymentDate))
		}
	}

	if len(locker.Transactions) == 0 {
		return nil, nil
	}
	return []*models.YearLocker{locker}, nil
}

func (im *importer) newLocker(student *models.Student, year int) *models.YearLocker {
	target := im.opts.Targets.Resolve(student.Department, year, student.EntryType, student.Batch)
	return &models.YearLocker{
		Year:             year,
		TuitionTarget:    target.Tuition,
		UniversityTarget: target.University,
		OtherTarget:      decimal.Zero,
	}
}

// newTransaction stamps every import-created transaction PENDING; bulk
// import never auto-approves.
func (im *importer) newTransaction(student *models.Student, year int, feeType models.FeeType, amount decimal.Decimal, row []string, paymentDate string) *models.FeeTransaction {
	academicYear := im.cell(row, FieldAcademicYear)
	if academicYear == "" {
		academicYear = fees.AcademicYearFor(student.AdmissionYear, year)
	}
	return &models.FeeTransaction{
		ID:            im.opts.NewID(),
		HallTicketNo:  student.HallTicketNo,
		FeeType:       feeType,
		Amount:        amount,
		ChallanNo:     im.cell(row, FieldChallanNo),
		PaymentMode:   im.cell(row, FieldPaymentMode),
		PaymentDate:   paymentDate,
		AcademicYear:  academicYear,
		FinancialYear: fees.DeriveFinancialYear(paymentDate),
		Status:        models.StatusPending,
	}
}

// admissionYear resolves the admission year from its column, the batch
// string, or the two-digit roll number prefix, in that order.
func (im *importer) admissionYear(row []string, roll string) int {
	if y, err := strconv.Atoi(im.cell(row, FieldAdmissionYear)); err == nil && y > 1900 {
		return y
	}
	if y := yearFromBatch(im.cell(row, FieldBatch)); y > 0 {
		return y
	}
	return yearFromRoll(roll)
}

func (im *importer) parseYear(cell string, fallback int) int {
	if y, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil && y >= 1 {
		return y
	}
	if fallback >= 1 {
		return fallback
	}
	return 1
}

func parseEntryType(cell string) models.EntryType {
	if strings.Contains(strings.ToLower(cell), "lateral") {
		return models.EntryLateral
	}
	return models.EntryRegular
}

var batchPrefix = regexp.MustCompile(`^\s*(\d{4})\s*-`)
var rollPrefix = regexp.MustCompile(`^(\d{2})\D`)

func yearFromBatch(batch string) int {
	m := batchPrefix.FindStringSubmatch(batch)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

func yearFromRoll(roll string) int {
	m := rollPrefix.FindStringSubmatch(roll)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return 2000 + y
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

var amountCleaner = strings.NewReplacer(",", "", " ", "", "₹", "", "Rs.", "", "rs.", "")

// parseAmount interprets a spreadsheet money cell. Empty cells are zero;
// garbage is an error so the row can be reported rather than silently
// imported as zero.
func parseAmount(cell string) (decimal.Decimal, error) {
	s := amountCleaner.Replace(strings.TrimSpace(cell))
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
