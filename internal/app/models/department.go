package models

// CourseType identifies the degree program a department belongs to
type CourseType string

const (
	CourseBE CourseType = "B.E"
	CourseME CourseType = "M.E"
)

// FeeGroup is the cost tier used as fallback pricing when no
// per-department-year override exists
type FeeGroup string

const (
	FeeGroupA FeeGroup = "A"
	FeeGroupB FeeGroup = "B"
	FeeGroupC FeeGroup = "C"
)

// Department represents immutable department reference data.
// Code is the canonical department code (e.g. CSE, ME-VLSI).
type Department struct {
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	CourseType    CourseType `json:"courseType"`
	DurationYears int        `json:"durationYears"`
	FeeGroup      FeeGroup   `json:"feeGroup"`
}
