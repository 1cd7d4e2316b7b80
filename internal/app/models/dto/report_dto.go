package dto

import "github.com/shopspring/decimal"

// CollectionRow is one aggregate of the collection report
type CollectionRow struct {
	Department string          `json:"department"`
	FeeType    string          `json:"feeType"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
}

// CollectionReportResponse totals approved payments by department and
// fee type within a payment-date range.
type CollectionReportResponse struct {
	From  string          `json:"from,omitempty"`
	To    string          `json:"to,omitempty"`
	Rows  []CollectionRow `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

// DefaulterRow is one student-year with outstanding dues
type DefaulterRow struct {
	HallTicketNo  string          `json:"hallTicketNo"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	Year          int             `json:"year"`
	TuitionDue    decimal.Decimal `json:"tuitionDue"`
	UniversityDue decimal.Decimal `json:"universityDue"`
}

// DefaultersResponse lists students with dues against their targets
type DefaultersResponse struct {
	Rows []DefaulterRow `json:"rows"`
}
