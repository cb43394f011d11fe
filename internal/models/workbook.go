package models

import (
	"fmt"
	"strings"
)

// CellKind classifies the value stored in a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
	CellDate
	CellFormula
	CellError
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellDate:
		return "date"
	case CellFormula:
		return "formula"
	case CellError:
		return "error"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Cell is a single grid value. Value already holds the rendered text; it is "" for CellEmpty.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Value string   `json:"value"`
}

// Row is an ordered sequence of cells.
type Row []Cell

// Text joins the row's cell values with tabs.
func (r Row) Text() string {
	vals := make([]string, len(r))
	for i, c := range r {
		if c.Kind == CellEmpty {
			continue
		}
		vals[i] = c.Value
	}
	return strings.Join(vals, "\t")
}

// Sheet is a named grid of rows.
type Sheet struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Header returns the separator line that precedes the sheet's rows.
func (s *Sheet) Header() string {
	return "--- Sheet: " + s.Name + " ---"
}

// Workbook is an ordered sequence of sheets, in stored order.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Text renders every sheet as its header line followed by one tab-joined line per row.
// Lines are separated by newlines with no trailing newline.
func (w *Workbook) Text() string {
	var lines []string
	for i := range w.Sheets {
		s := &w.Sheets[i]
		lines = append(lines, s.Header())
		for _, row := range s.Rows {
			lines = append(lines, row.Text())
		}
	}
	return strings.Join(lines, "\n")
}
