package fees

import "testing"

func TestDeriveFinancialYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-04-01", "2025-26"}, // first day of the fiscal year
		{"2025-03-31", "2024-25"}, // last day of the previous one
		{"2025-12-15", "2025-26"},
		{"2026-01-10", "2025-26"},
		{"1999-04-01", "1999-00"}, // century rollover in the suffix
		{"2025-13-01", ""},
		{"31.03.2025", ""}, // not ISO; callers normalize first
		{"", ""},
	}

	for _, tt := range tests {
		if got := DeriveFinancialYear(tt.date); got != tt.want {
			t.Errorf("DeriveFinancialYear(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestAcademicYearFor(t *testing.T) {
	tests := []struct {
		admissionYear int
		yearOfStudy   int
		want          string
	}{
		{2024, 1, "2024-25"},
		{2024, 2, "2025-26"},
		{2022, 4, "2025-26"},
		{0, 1, ""},
	}

	for _, tt := range tests {
		if got := AcademicYearFor(tt.admissionYear, tt.yearOfStudy); got != tt.want {
			t.Errorf("AcademicYearFor(%d, %d) = %q, want %q", tt.admissionYear, tt.yearOfStudy, got, tt.want)
		}
	}
}
