package extract

import (
	"bytes"
	"fmt"

	"github.com/hyperjump/doctext/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// parseExcel reads every sheet of .xlsx bytes, in workbook order.
func (e *Extractor) parseExcel(content []byte) (*models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	extents, err := sheetExtents(content)
	if err != nil {
		return nil, fmt.Errorf("read sheet extents: %w", err)
	}

	r := &sheetReader{f: f, extents: extents, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	wb := &models.Workbook{}
	for _, name := range f.GetSheetList() {
		sheet, err := r.readSheet(name)
		if err != nil {
			return nil, &SheetError{Sheet: name, Err: err}
		}
		e.debug("sheet parsed", zap.String("sheet", name), zap.Int("rows", len(sheet.Rows)))
		wb.Sheets = append(wb.Sheets, *sheet)
	}
	return wb, nil
}

// sheetReader reads sheets of one open workbook. styles caches whether a style index
// carries a date number format.
type sheetReader struct {
	f        *excelize.File
	extents  map[string]sheetExtent
	date1904 bool
	styles   map[int]bool
}

// readSheet renders the sheet as a rectangular grid anchored at A1 and reaching the
// last row and column that hold a cell, valued or not. A sheet without cells has no rows.
func (r *sheetReader) readSheet(name string) (*models.Sheet, error) {
	raw, err := r.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}
	ext, ok := r.extents[name]
	if !ok {
		ext = rowsExtent(raw)
	}
	sheet := &models.Sheet{Name: name}
	for rowNum := 1; rowNum <= ext.maxRow; rowNum++ {
		var values []string
		if rowNum-1 < len(raw) {
			values = raw[rowNum-1]
		}
		row := make(models.Row, 0, ext.maxCol)
		for col := 1; col <= ext.maxCol; col++ {
			v := ""
			if col-1 < len(values) {
				v = values[col-1]
			}
			cell, err := r.cell(name, col, rowNum, v)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// rowsExtent sizes the grid from GetRows output when the worksheet part was not scanned.
func rowsExtent(raw [][]string) sheetExtent {
	ext := sheetExtent{maxRow: len(raw)}
	for _, row := range raw {
		ext.maxCol = max(ext.maxCol, len(row))
	}
	if ext.maxCol == 0 {
		return sheetExtent{}
	}
	return ext
}

// cell classifies one grid position and renders its value.
func (r *sheetReader) cell(sheet string, col, row int, raw string) (models.Cell, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Cell{}, err
	}
	formula, err := r.f.GetCellFormula(sheet, ref)
	if err != nil {
		return models.Cell{}, fmt.Errorf("formula %s: %w", ref, err)
	}
	if formula != "" {
		return models.Cell{Kind: models.CellFormula, Value: "=" + formula}, nil
	}
	if raw == "" {
		return models.Cell{Kind: models.CellEmpty}, nil
	}
	typ, err := r.f.GetCellType(sheet, ref)
	if err != nil {
		return models.Cell{}, fmt.Errorf("cell type %s: %w", ref, err)
	}
	switch typ {
	case excelize.CellTypeBool:
		return models.Cell{Kind: models.CellBool, Value: formatBool(raw)}, nil
	case excelize.CellTypeError:
		return models.Cell{Kind: models.CellError, Value: raw}, nil
	case excelize.CellTypeDate:
		return models.Cell{Kind: models.CellDate, Value: formatISODate(raw)}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.Cell{Kind: models.CellString, Value: raw}, nil
	}

	isDate, err := r.hasDateFormat(sheet, ref)
	if err != nil {
		return models.Cell{}, err
	}
	if isDate {
		if s, ok := formatSerialDate(raw, r.date1904); ok {
			return models.Cell{Kind: models.CellDate, Value: s}, nil
		}
	}
	if s, ok := formatNumber(raw); ok {
		return models.Cell{Kind: models.CellNumber, Value: s}, nil
	}
	return models.Cell{Kind: models.CellString, Value: raw}, nil
}

// hasDateFormat reports whether the cell's style applies a date or time number format.
func (r *sheetReader) hasDateFormat(sheet, ref string) (bool, error) {
	idx, err := r.f.GetCellStyle(sheet, ref)
	if err != nil {
		return false, fmt.Errorf("cell style %s: %w", ref, err)
	}
	if idx == 0 {
		return false, nil
	}
	if v, ok := r.styles[idx]; ok {
		return v, nil
	}
	style, err := r.f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("style %d: %w", idx, err)
	}
	var v bool
	if style.CustomNumFmt != nil {
		v = isDateFormatCode(*style.CustomNumFmt)
	} else {
		v = isBuiltinDateFormat(style.NumFmt)
	}
	r.styles[idx] = v
	return v, nil
}
