package fees

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

func target(tuition, university int64) models.Target {
	return models.Target{
		Tuition:    decimal.NewFromInt(tuition),
		University: decimal.NewFromInt(university),
	}
}

func testDepartments() []models.Department {
	return []models.Department{
		{Code: "CSE", Name: "Computer Science", CourseType: models.CourseBE, DurationYears: 4, FeeGroup: models.FeeGroupA},
		{Code: "MECH", Name: "Mechanical", CourseType: models.CourseBE, DurationYears: 4, FeeGroup: models.FeeGroupB},
		{Code: "CIVIL", Name: "Civil", CourseType: models.CourseBE, DurationYears: 4, FeeGroup: models.FeeGroupB},
		{Code: "ME-VLSI", Name: "VLSI Design", CourseType: models.CourseME, DurationYears: 2, FeeGroup: models.FeeGroupC},
	}
}

func TestResolveEmptyConfigFallsToBaseline(t *testing.T) {
	rc := BuildConfig(nil, testDepartments())
	got := rc.Resolve("CSE", 1, models.EntryRegular, "2024-28")
	if !got.Tuition.Equal(decimal.NewFromInt(100000)) || !got.University.Equal(decimal.NewFromInt(12650)) {
		t.Errorf("empty config: got {%s, %s}, want baseline {100000, 12650}", got.Tuition, got.University)
	}
}

func TestResolveYearBeyondDurationIsZero(t *testing.T) {
	doc := &models.FeeConfigDoc{Default: models.FeeLockerConfig{GroupA: target(90000, 12000)}}
	rc := BuildConfig(doc, testDepartments())

	tests := []struct {
		dept string
		year int
	}{
		{"CSE", 5},
		{"MECH", 9},
		{"ME-VLSI", 3}, // M.E programs run two years
	}
	for _, tt := range tests {
		got := rc.Resolve(tt.dept, tt.year, models.EntryRegular, "")
		if !got.IsZero() {
			t.Errorf("Resolve(%s, year %d) = {%s, %s}, want zero", tt.dept, tt.year, got.Tuition, got.University)
		}
	}
}

func TestResolveGroupFallback(t *testing.T) {
	doc := &models.FeeConfigDoc{
		Default: models.FeeLockerConfig{
			GroupA: target(95000, 12650),
			GroupB: target(75000, 12650),
			GroupC: models.GroupCBase{
				Year1: target(60000, 9000),
				Year2: target(55000, 9000),
			},
		},
	}
	rc := BuildConfig(doc, testDepartments())

	if got := rc.Resolve("CSE", 2, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("group A tuition = %s, want 95000", got.Tuition)
	}
	if got := rc.Resolve("MECH", 3, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("group B tuition = %s, want 75000", got.Tuition)
	}
	// Group C splits by year of study
	if got := rc.Resolve("ME-VLSI", 1, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("group C year 1 tuition = %s, want 60000", got.Tuition)
	}
	if got := rc.Resolve("ME-VLSI", 2, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("group C year 2 tuition = %s, want 55000", got.Tuition)
	}
}

func TestResolveGroupChangeOnlyAffectsGroupMembers(t *testing.T) {
	base := models.FeeLockerConfig{
		GroupA: target(95000, 12650),
		GroupB: target(75000, 12650),
	}
	before := BuildConfig(&models.FeeConfigDoc{Default: base}, testDepartments())

	bumped := base
	bumped.GroupB = target(80000, 12650)
	after := BuildConfig(&models.FeeConfigDoc{Default: bumped}, testDepartments())

	// CSE (group A) unchanged
	if b, a := before.Resolve("CSE", 1, models.EntryRegular, ""), after.Resolve("CSE", 1, models.EntryRegular, ""); !b.Tuition.Equal(a.Tuition) {
		t.Errorf("group A target moved with a group B change: %s -> %s", b.Tuition, a.Tuition)
	}
	// MECH and CIVIL (group B) both moved
	for _, dept := range []string{"MECH", "CIVIL"} {
		if got := after.Resolve(dept, 1, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(80000)) {
			t.Errorf("%s tuition after group B bump = %s, want 80000", dept, got.Tuition)
		}
	}
}

func TestResolveDeptYearOverrideBeatsGroup(t *testing.T) {
	doc := &models.FeeConfigDoc{
		Default: models.FeeLockerConfig{
			GroupA: target(95000, 12650),
			DeptYearTargets: map[string]models.YearTargets{
				"CSE": {2: target(110000, 13000)},
			},
		},
	}
	rc := BuildConfig(doc, testDepartments())

	// Overridden exact (dept, year)
	if got := rc.Resolve("CSE", 2, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(110000)) {
		t.Errorf("override tuition = %s, want 110000", got.Tuition)
	}
	// Other years of the same department still use the group
	if got := rc.Resolve("CSE", 1, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("non-overridden year tuition = %s, want 95000", got.Tuition)
	}
}

func TestResolveBatchConfigPrecedence(t *testing.T) {
	doc := &models.FeeConfigDoc{
		Default: models.FeeLockerConfig{
			GroupA: target(95000, 12650),
			DeptYearTargets: map[string]models.YearTargets{
				"CSE": {1: target(100000, 12650)},
			},
		},
		Batches: map[string]models.FeeLockerConfig{
			"2025-29": {
				DeptYearTargets: map[string]models.YearTargets{
					"CSE": {1: target(120000, 14000)},
				},
			},
		},
	}
	rc := BuildConfig(doc, testDepartments())

	// Batch-specific entry wins for its batch
	if got := rc.Resolve("CSE", 1, models.EntryRegular, "2025-29"); !got.Tuition.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("batch override tuition = %s, want 120000", got.Tuition)
	}
	// Batches without an entry fall back to the default config
	if got := rc.Resolve("CSE", 1, models.EntryRegular, "2024-28"); !got.Tuition.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("default config tuition = %s, want 100000", got.Tuition)
	}
	// A batch config missing the dept-year cell falls through to the
	// default config's table
	if got := rc.Resolve("CSE", 2, models.EntryRegular, "2025-29"); !got.Tuition.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("batch fallthrough tuition = %s, want group A 95000", got.Tuition)
	}
}

func TestResolveLateral(t *testing.T) {
	doc := &models.FeeConfigDoc{
		Default: models.FeeLockerConfig{
			GroupA: target(95000, 12650),
			DeptYearTargets: map[string]models.YearTargets{
				"CSE": {1: target(100000, 12650), 2: target(100000, 12650)},
			},
			LateralDeptYearTargets: map[string]models.YearTargets{
				"CSE": {2: target(85000, 12650)},
			},
		},
	}
	rc := BuildConfig(doc, testDepartments())

	if got := rc.Resolve("CSE", 2, models.EntryLateral, ""); !got.Tuition.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("lateral year 2 tuition = %s, want 85000", got.Tuition)
	}
	// Lateral year 1 resolves through the regular chain; the lateral
	// table never defines year 1
	if got := rc.Resolve("CSE", 1, models.EntryLateral, ""); !got.Tuition.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("lateral year 1 tuition = %s, want regular 100000", got.Tuition)
	}
	// Lateral years without a lateral entry fall to the group, not the
	// regular dept-year table
	if got := rc.Resolve("CSE", 3, models.EntryLateral, ""); !got.Tuition.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("lateral year 3 tuition = %s, want group A 95000", got.Tuition)
	}
}

func TestResolveUnknownDepartment(t *testing.T) {
	doc := &models.FeeConfigDoc{Default: models.FeeLockerConfig{GroupA: target(95000, 12650)}}
	rc := BuildConfig(doc, testDepartments())

	// Unknown codes degrade to the baseline rather than failing
	got := rc.Resolve("Marine Engineering", 1, models.EntryRegular, "")
	if !got.Tuition.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("unknown dept tuition = %s, want baseline 100000", got.Tuition)
	}
	// But config tables can price codes missing from reference data
	doc.Default.DeptYearTargets = map[string]models.YearTargets{
		"MARINE": {1: target(70000, 9000)},
	}
	rc = BuildConfig(doc, testDepartments())
	if got := rc.Resolve("MARINE", 1, models.EntryRegular, ""); !got.Tuition.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("config-only dept tuition = %s, want 70000", got.Tuition)
	}
}
