package sheet

import (
	"errors"
	"strings"
	"testing"
)

func TestReadRowsCSV(t *testing.T) {
	csvData := "Roll No,Student Name,Tuition Fee\n24-CSE-001,JOHN,100000\n24-CSE-002,PRIYA\n"

	rows, err := ReadRows(strings.NewReader(csvData), "fees.csv")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Roll No" || rows[1][2] != "100000" {
		t.Errorf("unexpected grid: %v", rows)
	}
	// Ragged rows are tolerated
	if len(rows[2]) != 2 {
		t.Errorf("ragged row length = %d, want 2", len(rows[2]))
	}
}

func TestReadRowsUnsupportedExtension(t *testing.T) {
	_, err := ReadRows(strings.NewReader("x"), "fees.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadRowsExtensionCaseInsensitive(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("a,b\n"), "FEES.CSV"); err != nil {
		t.Errorf("uppercase extension rejected: %v", err)
	}
}
