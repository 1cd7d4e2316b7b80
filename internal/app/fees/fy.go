package fees

import (
	"fmt"
	"strings"
	"time"
)

// DeriveFinancialYear maps an ISO date (YYYY-MM-DD) onto the April–March
// Indian financial year label, e.g. "2025-04-01" -> "2025-26" and
// "2025-03-31" -> "2024-25". Unparseable input yields "".
func DeriveFinancialYear(isoDate string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(isoDate))
	if err != nil {
		return ""
	}
	year := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}

// AcademicYearFor labels the academic year a student's Nth year of study
// falls in, counted from the admission year: admission 2024, year 2 ->
// "2025-26".
func AcademicYearFor(admissionYear, yearOfStudy int) string {
	if admissionYear <= 0 {
		return ""
	}
	start := admissionYear + yearOfStudy - 1
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
