package feeimport

import "testing"

func TestMatchHeadersKnownTemplates(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[string]int
	}{
		{
			name:    "office fee template",
			headers: []string{"Roll No", "Student Name", "Department", "Tuition Fee Challan Date", "Tuition Fee", "University Fee"},
			want: map[string]int{
				FieldRollNo:        0,
				FieldStudentName:   1,
				FieldDepartment:    2,
				FieldPaymentDate:   3, // "challan date" outscores the shorter "challan" alias
				FieldTuitionFee:    4,
				FieldUniversityFee: 5,
			},
		},
		{
			// A bare "Challan" column is a challan number, while a column
			// mentioning "challan date" is a payment date.
			name:    "challan register",
			headers: []string{"Roll No", "Challan", "Amount - Tuition"},
			want: map[string]int{
				FieldRollNo:     0,
				FieldChallanNo:  1,
				FieldTuitionFee: 2,
			},
		},
		{
			name:    "admission register",
			headers: []string{"S.No", "Hall Ticket Number", "Name of the Student", "Father's Name", "Branch", "Quota", "Year of Admission"},
			want: map[string]int{
				FieldRollNo:            1,
				FieldStudentName:       2,
				FieldFatherName:        3,
				FieldDepartment:        4,
				FieldAdmissionCategory: 5,
				FieldAdmissionYear:     6,
			},
		},
		{
			name:    "bank export",
			headers: []string{"ROLLNO", "AMOUNT PAID - TUITION", "UTR NO.", "Transaction Date", "Mode"},
			want: map[string]int{
				FieldRollNo:      0,
				FieldTuitionFee:  1, // substring-tolerant in both directions
				FieldChallanNo:   2,
				FieldPaymentDate: 3,
				FieldPaymentMode: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchHeaders(tt.headers)
			for field, wantCol := range tt.want {
				if gotCol, ok := got[field]; !ok || gotCol != wantCol {
					t.Errorf("field %s matched column %d (present=%v), want %d", field, gotCol, ok, wantCol)
				}
			}
			for field, col := range got {
				if _, ok := tt.want[field]; !ok {
					t.Errorf("unexpected match: %s -> column %d", field, col)
				}
			}
		})
	}
}

func TestMatchHeadersFirstColumnWins(t *testing.T) {
	got := MatchHeaders([]string{"Roll No", "Roll Number", "Name"})
	if got[FieldRollNo] != 0 {
		t.Errorf("roll_no matched column %d, want first matching column 0", got[FieldRollNo])
	}
}

func TestDetectMultiYear(t *testing.T) {
	headers := []string{
		"Roll No", "Name",
		"1st Year - Tuition", "1st Year - University",
		"2 Year - Tuition", "2 Year - University",
		"3rd year – tuition", // en-dash, lower case
		"Random Column",
	}
	got := DetectMultiYear(headers)
	if len(got) != 3 {
		t.Fatalf("detected %d years, want 3", len(got))
	}
	if got[0].Year != 1 || got[0].TuitionCol != 2 || got[0].UniversityCol != 3 {
		t.Errorf("year 1 columns = %+v", got[0])
	}
	if got[1].Year != 2 || got[1].TuitionCol != 4 || got[1].UniversityCol != 5 {
		t.Errorf("year 2 columns = %+v", got[1])
	}
	if got[2].Year != 3 || got[2].TuitionCol != 6 || got[2].UniversityCol != -1 {
		t.Errorf("year 3 columns = %+v", got[2])
	}
}

func TestDetectMultiYearRejectsNearMisses(t *testing.T) {
	for _, h := range []string{
		"Year - Tuition",        // no year number
		"1st Year Tuition",      // no separator
		"First Year - Tuition",  // spelled-out ordinal
		"1st Year - Hostel Fee", // not a tuition/university column
	} {
		if got := DetectMultiYear([]string{h}); len(got) != 0 {
			t.Errorf("header %q unexpectedly detected as multi-year", h)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    SheetType
	}{
		{
			"combined",
			[]string{"Roll No", "Student Name", "Department", "Batch", "Tuition Fee"},
			SheetCombined,
		},
		{
			"fee only",
			[]string{"Roll No", "Tuition Fee", "University Fee", "Challan No"},
			SheetFee,
		},
		{
			"fee with identity but no admission field",
			[]string{"Roll No", "Student Name", "Department", "Tuition Fee"},
			SheetFee,
		},
		{
			"student only",
			[]string{"Roll No", "Student Name", "Father Name", "Department"},
			SheetStudent,
		},
		{
			"multi-year beats everything",
			[]string{"Roll No", "Student Name", "Batch", "Tuition Fee", "1st Year - Tuition"},
			SheetMultiYear,
		},
		{
			"multi-year columns without a roll column stay undetectable",
			[]string{"1st Year - Tuition", "1st Year - University"},
			SheetUndetected,
		},
		{
			"undetected",
			[]string{"Alpha", "Beta", "Gamma"},
			SheetUndetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := MatchHeaders(tt.headers)
			if got := Classify(cols, DetectMultiYear(tt.headers)); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.headers, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01.09.2025", "2025-09-01"},
		{"1.9.2025", "2025-09-01"},
		{"31/03/2025", "2025-03-31"},
		{"2025-09-01", "2025-09-01"},
		{"01-04-2025", "2025-04-01"},
		{"not a date", ""},
		{"32.01.2025", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
