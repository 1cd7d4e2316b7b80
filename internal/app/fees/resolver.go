package fees

import (
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// Baseline returns the hardcoded fallback target used when no
// configuration applies at any level. Fee collection is never blocked by
// missing config.
func Baseline() models.Target {
	return models.Target{
		Tuition:    decimal.NewFromInt(100000),
		University: decimal.NewFromInt(12650),
	}
}

// plan holds the fully-populated targets of one config scope. Arrays are
// indexed by year-1 and cover every year up to the program duration, so
// resolution never needs presence checks.
type plan struct {
	regular map[string][]models.Target
	lateral map[string][]models.Target
}

// ResolvedConfig is a fee-config document compiled against department
// reference data. It is immutable after construction and safe for
// concurrent reads.
type ResolvedConfig struct {
	departments map[string]*models.Department
	defaultPlan *plan
	batchPlans  map[string]*plan
}

// BuildConfig compiles a fee-config document into a ResolvedConfig.
// Every (department, year) combination across the reference data and the
// override tables gets a concrete target at build time, applying the
// fallback chain once: batch dept-year entry, default dept-year entry,
// cost-group base, baseline. A nil doc yields baseline everywhere.
func BuildConfig(doc *models.FeeConfigDoc, departments []models.Department) *ResolvedConfig {
	rc := &ResolvedConfig{
		departments: make(map[string]*models.Department, len(departments)),
		batchPlans:  make(map[string]*plan),
	}
	for i := range departments {
		d := departments[i]
		rc.departments[d.Code] = &d
	}

	var def models.FeeLockerConfig
	if doc != nil {
		def = doc.Default
	}
	rc.defaultPlan = rc.buildPlan(def, def)
	if doc != nil {
		for batch, cfg := range doc.Batches {
			rc.batchPlans[batch] = rc.buildPlan(cfg, def)
		}
	}
	return rc
}

// codeUnion collects every department code known to reference data or
// mentioned in either config's override tables.
func (rc *ResolvedConfig) codeUnion(cfg, def models.FeeLockerConfig) []string {
	seen := make(map[string]bool)
	var codes []string
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for code := range rc.departments {
		add(code)
	}
	for _, tables := range []map[string]models.YearTargets{
		cfg.DeptYearTargets, cfg.LateralDeptYearTargets,
		def.DeptYearTargets, def.LateralDeptYearTargets,
	} {
		for code := range tables {
			add(code)
		}
	}
	return codes
}

func (rc *ResolvedConfig) buildPlan(cfg, def models.FeeLockerConfig) *plan {
	p := &plan{
		regular: make(map[string][]models.Target),
		lateral: make(map[string][]models.Target),
	}
	for _, code := range rc.codeUnion(cfg, def) {
		duration := ProgramDuration(code, rc.departments[code])
		regular := make([]models.Target, duration)
		lateral := make([]models.Target, duration)
		for year := 1; year <= duration; year++ {
			regular[year-1] = rc.resolveYear(cfg, def, code, year, false)
			if year >= 2 {
				lateral[year-1] = rc.resolveYear(cfg, def, code, year, true)
			} else {
				// The lateral table never defines year 1; a lateral
				// student's year-1 locker resolves through the regular
				// chain.
				lateral[year-1] = regular[year-1]
			}
		}
		p.regular[code] = regular
		p.lateral[code] = lateral
	}
	return p
}

// resolveYear applies the fallback chain for one (code, year) cell.
func (rc *ResolvedConfig) resolveYear(cfg, def models.FeeLockerConfig, code string, year int, isLateral bool) models.Target {
	cfgTable, defTable := cfg.DeptYearTargets, def.DeptYearTargets
	if isLateral {
		cfgTable, defTable = cfg.LateralDeptYearTargets, def.LateralDeptYearTargets
	}
	// Per-department-year override beats the cost group even when they
	// disagree. Intentional, not incidental.
	if t, ok := cfgTable[code][year]; ok {
		return t
	}
	if t, ok := defTable[code][year]; ok {
		return t
	}
	if t, ok := rc.groupBase(cfg, def, code, year); ok {
		return t
	}
	return Baseline()
}

// groupBase resolves the cost-group base amount for a department. A
// zero group base counts as unset and falls through to the default
// config's group, then to the baseline.
func (rc *ResolvedConfig) groupBase(cfg, def models.FeeLockerConfig, code string, year int) (models.Target, bool) {
	dept, ok := rc.departments[code]
	if !ok {
		return models.Target{}, false
	}
	pick := func(c models.FeeLockerConfig) models.Target {
		switch dept.FeeGroup {
		case models.FeeGroupA:
			return c.GroupA
		case models.FeeGroupB:
			return c.GroupB
		case models.FeeGroupC:
			if year == 1 {
				return c.GroupC.Year1
			}
			return c.GroupC.Year2
		}
		return models.Target{}
	}
	if t := pick(cfg); !t.IsZero() {
		return t, true
	}
	if t := pick(def); !t.IsZero() {
		return t, true
	}
	return models.Target{}, false
}

// Department returns the reference data for a canonical code, or nil
// when the code is unknown.
func (rc *ResolvedConfig) Department(code string) *models.Department {
	return rc.departments[code]
}

// Resolve produces the {tuition, university} targets for one student
// year. Pure and total: every input yields a value, degrading through
// the fallback chain. Years beyond the program duration owe nothing.
func (rc *ResolvedConfig) Resolve(department string, year int, entryType models.EntryType, admissionBatch string) models.Target {
	duration := ProgramDuration(department, rc.departments[department])
	if year < 1 || year > duration {
		return models.Target{Tuition: decimal.Zero, University: decimal.Zero}
	}

	p := rc.defaultPlan
	if bp, ok := rc.batchPlans[admissionBatch]; ok {
		p = bp
	}

	table := p.regular
	if entryType == models.EntryLateral {
		table = p.lateral
	}
	if targets, ok := table[department]; ok && year <= len(targets) {
		return targets[year-1]
	}
	// Department unknown to both reference data and config tables.
	return Baseline()
}
