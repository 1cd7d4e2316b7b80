package models

import "github.com/shopspring/decimal"

// YearLocker is the per-academic-year fee bucket of a student.
// Targets are a snapshot resolved at creation/merge time; later config
// changes do not retarget existing lockers unless an explicit
// apply-to-all-students config update rewrites them.
type YearLocker struct {
	ID               int64           `json:"id" db:"id"`
	StudentID        int64           `json:"studentId" db:"student_id"`
	Year             int             `json:"year" db:"year" example:"1"`
	TuitionTarget    decimal.Decimal `json:"tuitionTarget" db:"tuition_target"`
	UniversityTarget decimal.Decimal `json:"universityTarget" db:"university_target"`
	OtherTarget      decimal.Decimal `json:"otherTarget" db:"other_target"`

	Transactions []*FeeTransaction `json:"transactions,omitempty"`
}

// PaidTotal sums the amounts of approved transactions of the given fee type.
func (l *YearLocker) PaidTotal(feeType FeeType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.Transactions {
		if tx.FeeType == feeType && tx.Status == StatusApproved {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
