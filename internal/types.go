package internal

// Record is one normalized filing row. Fields holds the canonical columns
// that matched a known raw name; OriginalData keeps every raw column the row
// carried, untouched, whether or not it was recognized.
type Record struct {
	SourceFile string `json:"sourceFile"`
	LineNo     int    `json:"lineNo"`
	FormType   string `json:"formType"`

	Fields       map[string]string `json:"fields"`
	OriginalData map[string]string `json:"originalData"`
}

// Get reads one canonical field, reporting whether the row carried it.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// ImportRow mirrors one row of the imports table.
type ImportRow struct {
	ID         int
	SourcePath string
	Status     string
	Records    int
	Error      *string
	StartedAt  string
	FinishedAt *string
}
