package feeimport

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SheetType classifies what an uploaded sheet carries.
type SheetType string

const (
	SheetStudent    SheetType = "student"
	SheetFee        SheetType = "fee"
	SheetCombined   SheetType = "combined"
	SheetMultiYear  SheetType = "multi-year"
	SheetUndetected SheetType = "undetected"
)

// multiYearPattern is the wide-template header contract:
// "<N> Year - Tuition" / "<N> Year - University", case-insensitive,
// optional ordinal suffix, hyphen or en-dash. Existing uploaded
// templates depend on this exact shape.
var multiYearPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:st|nd|rd|th)?\s*year\s*[-–]\s*(tuition|university)\s*$`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// normalizeHeader lowercases a header cell, strips punctuation and
// collapses whitespace. Apostrophes vanish entirely so "Father's Name"
// squashes to "fathers name" rather than leaving a dangling "s" token.
func normalizeHeader(h string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(apostrophes.Replace(strings.ToLower(h)), " "))
}

// MatchHeaders maps semantic fields to column indexes. Exact matches
// claim their columns first; substring-tolerant matches (alias contains
// header or header contains alias) then fill remaining fields from
// unclaimed columns, left to right. A header can satisfy several fields
// at once ("Tuition Fee Challan Date" contains both "challan" and
// "challan date"); the longest matching alias decides which field gets
// the column.
func MatchHeaders(headerRow []string) map[string]int {
	normalized := make([]string, len(headerRow))
	for i, h := range headerRow {
		normalized[i] = normalizeHeader(h)
	}

	matched := make(map[string]int)
	claimed := make(map[int]bool)

	// Pass 1: exact alias matches.
	for _, fa := range fieldAliases {
		for _, alias := range fa.aliases {
			col := -1
			for i, h := range normalized {
				if !claimed[i] && h != "" && h == alias {
					col = i
					break
				}
			}
			if col >= 0 {
				matched[fa.field] = col
				claimed[col] = true
				break
			}
		}
	}

	// Pass 2: substring-tolerant matches for fields still unmatched.
	// Ties on alias length fall to the earlier fieldAliases entry.
	for i, h := range normalized {
		if claimed[i] || h == "" {
			continue
		}
		bestField, bestLen := "", 0
		for _, fa := range fieldAliases {
			if _, ok := matched[fa.field]; ok {
				continue
			}
			for _, alias := range fa.aliases {
				if len(alias) <= bestLen {
					continue
				}
				if strings.Contains(h, alias) || strings.Contains(alias, h) {
					bestField, bestLen = fa.field, len(alias)
				}
			}
		}
		if bestField != "" {
			matched[bestField] = i
			claimed[i] = true
		}
	}

	return matched
}

// YearColumns locates the wide-template fee columns detected for one
// year of study. A missing column is -1.
type YearColumns struct {
	Year          int
	TuitionCol    int
	UniversityCol int
}

// DetectMultiYear scans headers for the multi-year column pattern and
// returns the detected years in ascending order.
func DetectMultiYear(headerRow []string) []YearColumns {
	byYear := make(map[int]*YearColumns)
	for i, h := range headerRow {
		m := multiYearPattern.FindStringSubmatch(h)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil || year < 1 {
			continue
		}
		yc, ok := byYear[year]
		if !ok {
			yc = &YearColumns{Year: year, TuitionCol: -1, UniversityCol: -1}
			byYear[year] = yc
		}
		switch strings.ToLower(m[2]) {
		case "tuition":
			if yc.TuitionCol < 0 {
				yc.TuitionCol = i
			}
		case "university":
			if yc.UniversityCol < 0 {
				yc.UniversityCol = i
			}
		}
	}

	years := make([]YearColumns, 0, len(byYear))
	for _, yc := range byYear {
		years = append(years, *yc)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years
}

// Classify decides the sheet type from the matched fields. Multi-year
// detection takes priority over everything else as long as a roll
// number column exists.
func Classify(cols map[string]int, multiYear []YearColumns) SheetType {
	has := func(field string) bool {
		_, ok := cols[field]
		return ok
	}
	hasRoll := has(FieldRollNo)

	if len(multiYear) > 0 && hasRoll {
		return SheetMultiYear
	}

	hasIdentity := hasRoll && has(FieldStudentName)
	hasFee := has(FieldTuitionFee) || has(FieldUniversityFee)
	hasAdmission := has(FieldAdmissionYear) || has(FieldBatch) || has(FieldAdmissionCategory)

	switch {
	case hasIdentity && hasFee && hasAdmission:
		return SheetCombined
	case hasFee && hasRoll:
		return SheetFee
	case hasIdentity:
		return SheetStudent
	default:
		return SheetUndetected
	}
}
