package fees

import (
	"testing"

	"github.com/arjunrk/feeledger/internal/app/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"CSE", "CSE"},
		{"cse", "CSE"},
		{"Computer Science Engineering", "CSE"},
		{"COMPUTER SCIENCE & ENGINEERING", "CSE"},
		{"computer-science-and-engineering", "CSE"},
		{"Electronics and Communication Engineering", "ECE"},
		{"Electronics & Communication", "ECE"},
		{"Electrical & Electronics Engineering", "EEE"},
		{"Electrical & Electronics", "EEE"},
		{"Artificial Intelligence & Machine Learning", "AIML"},
		{"Mechanical", "MECH"},
		{"MECHANICAL ENGINEERING.", "MECH"},
		{"Civil Engineering", "CIVIL"},
		{"Information Technology", "IT"},
		{"M.E. VLSI", "ME-VLSI"},
		{"ME-VLSI", "ME-VLSI"},
		{"VLSI Design", "ME-VLSI"},
		{"M.E (CSE)", "ME-CSE"},
		// Unknown inputs pass through trimmed, never fail the row
		{"  Marine Engineering  ", "Marine Engineering"},
		{"XYZ", "XYZ"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsMEProgram(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ME-VLSI", true},
		{"ME-CSE", true},
		{"ME-ANYTHING", true}, // prefix convention
		{"CSE", false},
		{"MECH", false}, // no ME- prefix, not in the M.E set
		{"", false},
	}

	for _, tt := range tests {
		if got := IsMEProgram(tt.code); got != tt.want {
			t.Errorf("IsMEProgram(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestProgramDuration(t *testing.T) {
	if got := ProgramDuration("CSE", nil); got != 4 {
		t.Errorf("ProgramDuration(CSE) = %d, want 4", got)
	}
	if got := ProgramDuration("ME-VLSI", nil); got != 2 {
		t.Errorf("ProgramDuration(ME-VLSI) = %d, want 2", got)
	}

	// Explicit reference data takes precedence over the heuristic
	ref := &models.Department{Code: "ARCH", DurationYears: 5}
	if got := ProgramDuration("ARCH", ref); got != 5 {
		t.Errorf("ProgramDuration(ARCH, ref) = %d, want 5", got)
	}
}
