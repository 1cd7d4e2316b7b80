package feeimport

// Semantic field names produced by header matching.
const (
	FieldRollNo            = "roll_no"
	FieldStudentName       = "student_name"
	FieldFatherName        = "father_name"
	FieldDepartment        = "department"
	FieldCourse            = "course"
	FieldAdmissionCategory = "admission_category"
	FieldAdmissionYear     = "admission_year"
	FieldBatch             = "batch"
	FieldCurrentYear       = "current_year"
	FieldEntryType         = "entry_type"
	FieldTuitionFee        = "tuition_fee"
	FieldUniversityFee     = "university_fee"
	FieldOtherFee          = "other_fee"
	FieldChallanNo         = "challan_no"
	FieldPaymentDate       = "payment_date"
	FieldPaymentMode       = "payment_mode"
	FieldAcademicYear      = "academic_year"
)

// fieldAlias binds a semantic field to the header spellings seen in
// real-world upload templates. Exact matches honor alias order; fuzzy
// matches score by alias length, with entry order breaking ties. Kept
// as data so the table can be tested against a corpus of known header
// variants.
type fieldAlias struct {
	field   string
	aliases []string
}

var fieldAliases = []fieldAlias{
	{FieldRollNo, []string{
		"roll no", "roll number", "rollno", "hall ticket no", "hall ticket number",
		"hall ticket", "ht no", "htno", "admission no", "admn no",
	}},
	{FieldStudentName, []string{
		"student name", "name of the student", "name of student", "candidate name", "name",
	}},
	{FieldFatherName, []string{
		"father name", "fathers name", "name of the father", "parent name",
	}},
	{FieldDepartment, []string{
		"department", "branch", "dept", "course branch",
	}},
	{FieldCourse, []string{
		"course", "degree", "program",
	}},
	{FieldAdmissionCategory, []string{
		"admission category", "category", "quota", "admission type",
	}},
	{FieldAdmissionYear, []string{
		"admission year", "year of admission", "admitted year", "joining year",
	}},
	{FieldBatch, []string{
		"batch", "admission batch",
	}},
	{FieldCurrentYear, []string{
		"current year", "year of study", "studying year", "present year",
	}},
	{FieldEntryType, []string{
		"entry type", "mode of entry", "admission mode", "lateral entry",
	}},
	{FieldTuitionFee, []string{
		"tuition fee", "tuition fees", "tuition amount", "tuition",
	}},
	{FieldUniversityFee, []string{
		"university fee", "university fees", "university amount", "university",
		"jntu fee", "special fee",
	}},
	{FieldOtherFee, []string{
		"other fee", "other fees", "other amount", "misc fee", "miscellaneous fee",
	}},
	{FieldChallanNo, []string{
		"challan no", "challan number", "challan", "dd no", "reference no",
		"receipt no", "transaction id", "utr no",
	}},
	{FieldPaymentDate, []string{
		"payment date", "paid date", "date of payment", "challan date", "dd date",
		"transaction date",
	}},
	{FieldPaymentMode, []string{
		"payment mode", "mode of payment", "mode",
	}},
	{FieldAcademicYear, []string{
		"academic year", "acad year",
	}},
}
