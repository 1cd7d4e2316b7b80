package models

import "time"

// EntryType distinguishes regular admissions from lateral entrants,
// who join directly into year 2 of a B.E program
type EntryType string

const (
	EntryRegular EntryType = "REGULAR"
	EntryLateral EntryType = "LATERAL"
)

// Student defines the student model based on the 'students' table.
// HallTicketNo is the unique business identifier.
type Student struct {
	ID                int64     `json:"id" db:"id" example:"1"`
	HallTicketNo      string    `json:"hallTicketNo" db:"hall_ticket_no" example:"24-CSE-001"`
	Name              string    `json:"name" db:"name" example:"JOHN"`
	FatherName        string    `json:"fatherName" db:"father_name"`
	Department        string    `json:"department" db:"department" example:"CSE"`
	Course            string    `json:"course" db:"course" example:"B.E"`
	AdmissionCategory string    `json:"admissionCategory" db:"admission_category" example:"Convenor"`
	AdmissionYear     int       `json:"admissionYear" db:"admission_year" example:"2024"`
	Batch             string    `json:"batch" db:"batch" example:"2024-28"`
	CurrentYear       int       `json:"currentYear" db:"current_year" example:"1"`
	EntryType         EntryType `json:"entryType" db:"entry_type" example:"REGULAR"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Lockers []*YearLocker    `json:"lockers,omitempty"`
	Remarks []*StudentRemark `json:"remarks,omitempty"`
}

// LockerForYear returns the locker for the given year of study, or nil.
func (s *Student) LockerForYear(year int) *YearLocker {
	for _, l := range s.Lockers {
		if l.Year == year {
			return l
		}
	}
	return nil
}

// StudentRemark is a free-text administrative note attached to a student
type StudentRemark struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Text      string    `json:"text" db:"text"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
