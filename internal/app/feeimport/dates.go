package feeimport

import (
	"strings"
	"time"
)

// dateLayouts lists the accepted input forms in match order. Day-first
// forms come first: they are what the fee office's templates use.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
	time.RFC3339,
}

// NormalizeDate converts a cell into ISO YYYY-MM-DD. Unparseable input
// yields "" rather than failing the row.
func NormalizeDate(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
