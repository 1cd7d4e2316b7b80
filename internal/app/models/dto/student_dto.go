package dto

import (
	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// CreateStudentRequest represents manual admission data
type CreateStudentRequest struct {
	HallTicketNo      string `json:"hallTicketNo" binding:"required" example:"24-CSE-001"`
	Name              string `json:"name" binding:"required" example:"JOHN"`
	FatherName        string `json:"fatherName"`
	Department        string `json:"department" binding:"required" example:"CSE"`
	Course            string `json:"course"`
	AdmissionCategory string `json:"admissionCategory" example:"Convenor"`
	AdmissionYear     int    `json:"admissionYear" example:"2024"`
	Batch             string `json:"batch" example:"2024-28"`
	CurrentYear       int    `json:"currentYear" example:"1"`
	EntryType         string `json:"entryType" example:"REGULAR" enums:"REGULAR,LATERAL"`
}

// UpdateStudentRequest represents editable student fields
type UpdateStudentRequest struct {
	Name              string `json:"name" binding:"required"`
	FatherName        string `json:"fatherName"`
	Department        string `json:"department" binding:"required"`
	Course            string `json:"course"`
	AdmissionCategory string `json:"admissionCategory"`
	AdmissionYear     int    `json:"admissionYear"`
	Batch             string `json:"batch"`
	CurrentYear       int    `json:"currentYear" binding:"required,gte=1"`
	EntryType         string `json:"entryType"`
}

// StudentListResponse represents a page of students
type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// YearSummary is one row of a student's fee summary
type YearSummary struct {
	Year             int             `json:"year"`
	TuitionTarget    decimal.Decimal `json:"tuitionTarget"`
	TuitionPaid      decimal.Decimal `json:"tuitionPaid"`
	UniversityTarget decimal.Decimal `json:"universityTarget"`
	UniversityPaid   decimal.Decimal `json:"universityPaid"`
	OtherPaid        decimal.Decimal `json:"otherPaid"`
	PendingCount     int             `json:"pendingCount"`
}

// StudentSummaryResponse is the per-year paid-versus-target view
type StudentSummaryResponse struct {
	HallTicketNo string        `json:"hallTicketNo"`
	Name         string        `json:"name"`
	Department   string        `json:"department"`
	Years        []YearSummary `json:"years"`
}

// CreateRemarkRequest attaches an administrative note to a student
type CreateRemarkRequest struct {
	Text string `json:"text" binding:"required"`
}
