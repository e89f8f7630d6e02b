// internal/tabular/table.go
package tabular

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind discriminates the value a spreadsheet cell held before it was
// collapsed to text at the boundary.
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
)

// Cell is one raw cell value: text, number, or blank. Everything downstream
// of the boundary sees only the stringified form.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellBlank}
	}
	return Cell{Kind: CellText, Text: s}
}

func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// String collapses the cell to text, preserving stringify-then-trim
// semantics: numbers render without an exponent, blanks render empty.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// IsBlank reports whether the cell holds no usable value.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.String()) == ""
}

// UnmarshalJSON accepts the heterogeneous cells a JSON request body carries:
// strings, numbers, booleans, and null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*c = Cell{Kind: CellBlank}
	case string:
		*c = TextCell(val)
	case float64:
		*c = NumberCell(val)
	case bool:
		*c = TextCell(strconv.FormatBool(val))
	default:
		// objects/arrays have no tabular meaning; treat as blank
		*c = Cell{Kind: CellBlank}
	}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumber:
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// Table is the parsed form of one uploaded file: ordered headers plus ordered
// rows of raw cells.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// ColumnIndex resolves a column name to its index by exact header match,
// returning -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
