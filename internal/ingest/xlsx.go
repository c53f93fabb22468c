// Package ingest decodes the spreadsheet sources into column-keyed rows.
// The tabular format itself is delegated to excelize; everything past the
// raw rows belongs to the preprocessing services.
package ingest

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	appErrors "github.com/campusdash/course-api/pkg/errors"
)

// Row maps a column header to the cell value of one spreadsheet row.
// Absent cells are present with an empty string value.
type Row map[string]string

// XLSXReader reads rows from the first sheet of an XLSX workbook.
type XLSXReader struct{}

// NewXLSXReader constructs a reader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// ReadRows opens the workbook and returns its first sheet as header-keyed
// rows. A missing file is fatal to the run and surfaces as a typed error.
func (r *XLSXReader) ReadRows(path string) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceMissing.Code, appErrors.ErrSourceMissing.Status,
			fmt.Sprintf("source file not found: %s", path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	return MapRows(raw), nil
}

// MapRows converts a raw cell grid into header-keyed rows. The first row
// is the header; short data rows are padded with empty strings so every
// named column is always present.
func MapRows(raw [][]string) []Row {
	if len(raw) == 0 {
		return nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}
