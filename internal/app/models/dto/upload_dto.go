package dto

// UploadPreviewResponse describes how a sheet would be interpreted
// without importing anything.
type UploadPreviewResponse struct {
	Type           string         `json:"type" example:"fee"`
	Columns        map[string]int `json:"columns"`
	MultiYearPairs []int          `json:"multiYearPairs,omitempty"` // detected years, ascending
	RowCount       int            `json:"rowCount"`
	Sample         [][]string     `json:"sample,omitempty"`
}

// ImportResponse reports a bulk import batch. Row errors coexist with
// imported rows; nothing is rolled back because of them.
type ImportResponse struct {
	Type      string   `json:"type" example:"combined"`
	Total     int      `json:"total"`
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Merged    int      `json:"merged"`
	Errors    []string `json:"errors"`
}
