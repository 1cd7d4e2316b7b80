package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target is a {tuition, university} pair of monetary targets.
type Target struct {
	Tuition    decimal.Decimal `json:"tuition"`
	University decimal.Decimal `json:"university"`
}

// IsZero reports whether both amounts are zero.
func (t Target) IsZero() bool {
	return t.Tuition.IsZero() && t.University.IsZero()
}

// GroupCBase splits the M.E cost-group base amounts by year of study.
type GroupCBase struct {
	Year1 Target `json:"year1"`
	Year2 Target `json:"year2"`
}

// YearTargets associates a year of study with its target. Keys are
// serialized as stringified year numbers in JSON.
type YearTargets map[int]Target

// FeeLockerConfig is the fee-policy document: cost-group base amounts
// plus per-department-year override tables. The lateral table only ever
// carries entries for years >= 2 (lateral entrants skip year 1).
type FeeLockerConfig struct {
	GroupA                 Target                 `json:"groupA"`
	GroupB                 Target                 `json:"groupB"`
	GroupC                 GroupCBase             `json:"groupC"`
	DeptYearTargets        map[string]YearTargets `json:"deptYearTargets,omitempty"`
	LateralDeptYearTargets map[string]YearTargets `json:"lateralDeptYearTargets,omitempty"`
}

// FeeConfigDoc is the persisted configuration: a process-wide default
// config plus optional per-admission-batch overrides. Batches without an
// explicit entry resolve against the default config.
type FeeConfigDoc struct {
	Default   FeeLockerConfig            `json:"default"`
	Batches   map[string]FeeLockerConfig `json:"batches,omitempty"`
	UpdatedAt time.Time                  `json:"updatedAt"`
	UpdatedBy string                     `json:"updatedBy,omitempty"`
}
