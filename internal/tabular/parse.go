// internal/tabular/parse.go
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
)

// MaxFileSize caps uploads at 10MB.
const MaxFileSize = 10 * 1024 * 1024

var ErrNoHeaders = errors.New("no valid headers found")

// Parse decodes an uploaded file into a Table, dispatching on the filename
// extension. Only CSV and Excel are supported.
func Parse(filename string, r io.Reader) (*Table, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ParseCSV(r)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ParseXLSX(r)
	default:
		return nil, appErrors.NewUnsupportedFormat(filename)
	}
}

// ParseCSV reads the whole file, takes the first record as headers and the
// rest as data rows.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, appErrors.NewEmptyFile()
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, rec)
	}
	return buildTable(records[0], rows)
}

// ParseXLSX reads the first sheet of an Excel workbook. excelize stringifies
// cell values, so numeric cells arrive as text already.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.NewEmptyFile()
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, appErrors.NewEmptyFile()
	}

	return buildTable(records[0], records[1:])
}

func buildTable(rawHeaders []string, rawRows [][]string) (*Table, error) {
	headers := cleanHeaders(rawHeaders)
	if len(headers) == 0 {
		return nil, ErrNoHeaders
	}

	rows := make([][]Cell, 0, len(rawRows))
	for _, rec := range rawRows {
		cells := make([]Cell, len(rec))
		blank := true
		for i, v := range rec {
			cells[i] = TextCell(v)
			if !cells[i].IsBlank() {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, cells)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// cleanHeaders trims every header and drops blank trailing ones so that a
// ragged export does not produce phantom columns. Leading and interior
// headers keep their position to stay aligned with row cells.
func cleanHeaders(raw []string) []string {
	end := len(raw)
	for end > 0 && strings.TrimSpace(raw[end-1]) == "" {
		end--
	}
	headers := make([]string, end)
	allBlank := true
	for i := 0; i < end; i++ {
		headers[i] = strings.TrimSpace(raw[i])
		if headers[i] != "" {
			allBlank = false
		}
	}
	if allBlank {
		return nil
	}
	return headers
}
