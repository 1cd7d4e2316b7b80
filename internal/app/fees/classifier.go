package fees

import (
	"strings"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// deptAliases maps squashed (uppercased, non-alphanumeric stripped)
// department names to canonical codes. Data, not code, so the table can
// be tested exhaustively against known real-world variants.
var deptAliases = map[string]string{
	"CSE":                                  "CSE",
	"COMPUTERSCIENCE":                      "CSE",
	"COMPUTERSCIENCEENGINEERING":           "CSE",
	"COMPUTERSCIENCEANDENGINEERING":        "CSE",
	"ECE":                                  "ECE",
	"ELECTRONICSANDCOMMUNICATION":          "ECE",
	"ELECTRONICSCOMMUNICATION":             "ECE",
	"ELECTRONICSCOMMUNICATIONENGINEERING":  "ECE",
	"ELECTRONICSANDCOMMUNICATIONENGINEERING": "ECE",
	"EEE":                                  "EEE",
	"ELECTRICALANDELECTRONICS":             "EEE",
	"ELECTRICALELECTRONICS":                "EEE",
	"ELECTRICALANDELECTRONICSENGINEERING":  "EEE",
	"ELECTRICALELECTRONICSENGINEERING":     "EEE",
	"MECH":                                 "MECH",
	"MECHANICAL":                           "MECH",
	"MECHANICALENGINEERING":                "MECH",
	"CIVIL":                                "CIVIL",
	"CIVILENGINEERING":                     "CIVIL",
	"IT":                                   "IT",
	"INFORMATIONTECHNOLOGY":                "IT",
	"AIML":                                 "AIML",
	"CSEAIML":                              "AIML",
	"ARTIFICIALINTELLIGENCEANDMACHINELEARNING": "AIML",
	"ARTIFICIALINTELLIGENCEMACHINELEARNING":    "AIML",
	"MEVLSI":                  "ME-VLSI",
	"VLSI":                    "ME-VLSI",
	"VLSIDESIGN":              "ME-VLSI",
	"MECSE":                   "ME-CSE",
	"MECOMPUTERSCIENCE":       "ME-CSE",
	"MESE":                    "ME-SE",
	"MESTRUCTURALENGINEERING": "ME-SE",
	"MEPE":                    "ME-PE",
	"MEPOWERELECTRONICS":      "ME-PE",
}

// meDepartments is the fixed set of M.E department codes. Codes with the
// ME- prefix convention are also treated as M.E programs.
var meDepartments = map[string]bool{
	"ME-VLSI": true,
	"ME-CSE":  true,
	"ME-SE":   true,
	"ME-PE":   true,
}

// Normalize canonicalizes a free-text department name or code.
// Unmatched inputs pass through trimmed but otherwise unchanged; the
// system tolerates unknown department strings rather than failing a row.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if code, ok := deptAliases[b.String()]; ok {
		return code
	}
	return strings.TrimSpace(raw)
}

// IsMEProgram reports whether the code denotes an M.E (2-year) program.
func IsMEProgram(code string) bool {
	return meDepartments[code] || strings.HasPrefix(code, "ME-")
}

// ProgramDuration returns the number of program years for a department
// code. Explicit reference data takes precedence over the M.E heuristic.
func ProgramDuration(code string, ref *models.Department) int {
	if ref != nil && ref.DurationYears > 0 {
		return ref.DurationYears
	}
	if IsMEProgram(code) {
		return 2
	}
	return 4
}
