package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fecdec/internal"
)

// WriteXLSX writes decoded records to a workbook: bookkeeping columns first,
// one column per canonical field, and the untouched raw row as JSON last.
func WriteXLSX(records []internal.Record, canonicals []string, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := append([]string{"source_file", "line_no", "form_type"}, canonicals...)
	headers = append(headers, "original_data")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.SourceFile)
		set(2, rec.LineNo)
		set(3, rec.FormType)
		col := 4
		for _, name := range canonicals {
			set(col, rec.Fields[name])
			col++
		}
		raw, _ := json.Marshal(rec.OriginalData)
		set(col, string(raw))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
