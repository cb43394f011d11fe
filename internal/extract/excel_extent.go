package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxWorkbookPath is the default workbook part when _rels/.rels names none.
const xlsxWorkbookPath = "xl/workbook.xml"

// officeDocumentRelSuffix ends the relationship type of the package's main part.
const officeDocumentRelSuffix = "/officeDocument"

// sheetExtent is the last row and column holding a <c> element, 1-based. Zero means no cells.
type sheetExtent struct {
	maxRow, maxCol int
}

type xlsxRelationships struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxWorkbookSheets struct {
	Sheets []struct {
		Name  string     `xml:"name,attr"`
		Attrs []xml.Attr `xml:",any,attr"`
	} `xml:"sheets>sheet"`
}

// relID returns the r:id attribute, whatever prefix or namespace it was written with.
func relID(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Local == "id" {
			return a.Value
		}
	}
	return ""
}

// resolveTarget resolves a relationship target against the directory of its source part.
func resolveTarget(sourceDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(sourceDir, target))
}

// sheetExtents maps sheet names to the extent of their cells. A cell counts as soon as
// the worksheet has a <c> element for it, with or without a value. Sheets whose part
// cannot be located are absent from the map.
func sheetExtents(content []byte) (map[string]sheetExtent, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("not a zip: %w", err)
	}

	wbPath := xlsxWorkbookPath
	if rels, err := readRels(zr, "_rels/.rels"); err != nil {
		return nil, err
	} else if rels != nil {
		for _, rel := range rels.Relationships {
			if strings.HasSuffix(rel.Type, officeDocumentRelSuffix) {
				wbPath = resolveTarget("", rel.Target)
				break
			}
		}
	}
	wbXML, err := readZipPart(zr, wbPath)
	if err != nil {
		return nil, err
	}
	if wbXML == nil {
		return nil, fmt.Errorf("workbook part %s not found", wbPath)
	}
	var wb xlsxWorkbookSheets
	if err := xml.Unmarshal(wbXML, &wb); err != nil {
		return nil, fmt.Errorf("parse %s: %w", wbPath, err)
	}

	wbDir := path.Dir(wbPath)
	rels, err := readRels(zr, path.Join(wbDir, "_rels", path.Base(wbPath)+".rels"))
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string)
	if rels != nil {
		for _, rel := range rels.Relationships {
			targets[rel.ID] = resolveTarget(wbDir, rel.Target)
		}
	}

	extents := make(map[string]sheetExtent, len(wb.Sheets))
	for _, s := range wb.Sheets {
		target, ok := targets[relID(s.Attrs)]
		if !ok {
			continue
		}
		part, err := readZipPart(zr, target)
		if err != nil {
			return nil, err
		}
		if part == nil {
			continue
		}
		ext, err := scanSheetExtent(bytes.NewReader(part))
		if err != nil {
			return nil, &SheetError{Sheet: s.Name, Err: err}
		}
		extents[s.Name] = ext
	}
	return extents, nil
}

func readRels(zr *zip.Reader, name string) (*xlsxRelationships, error) {
	data, err := readZipPart(zr, name)
	if err != nil || data == nil {
		return nil, err
	}
	var rels xlsxRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &rels, nil
}

// scanSheetExtent walks <sheetData> and records the furthest row and column of any <c>.
// Rows and cells without an r attribute follow the previous one.
func scanSheetExtent(r io.Reader) (sheetExtent, error) {
	dec := xml.NewDecoder(r)
	var (
		ext         sheetExtent
		inSheetData bool
		row, col    int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return ext, nil
		}
		if err != nil {
			return sheetExtent{}, fmt.Errorf("parse worksheet: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "sheetData":
				inSheetData = true
			case inSheetData && t.Name.Local == "row":
				row++
				if v := attr(t, "r"); v != "" {
					n, err := strconv.Atoi(v)
					if err != nil {
						return sheetExtent{}, fmt.Errorf("row number %q: %w", v, err)
					}
					row = n
				}
				col = 0
			case inSheetData && t.Name.Local == "c":
				col++
				if ref := attr(t, "r"); ref != "" {
					c, rr, err := excelize.CellNameToCoordinates(ref)
					if err != nil {
						return sheetExtent{}, fmt.Errorf("cell %q: %w", ref, err)
					}
					col, row = c, rr
				}
				ext.maxRow = max(ext.maxRow, row)
				ext.maxCol = max(ext.maxCol, col)
				if err := dec.Skip(); err != nil {
					return sheetExtent{}, fmt.Errorf("parse worksheet: %w", err)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "sheetData" {
				return ext, nil
			}
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
