// Package e2e provides end-to-end tests; this file builds minimal input files for the supported kinds.
package e2e

import (
	"archive/zip"
	"bytes"
	"encoding/xml"

	"github.com/xuri/excelize/v2"
)

// SheetFixture is one sheet of a fixture workbook: a name and cell values keyed by reference.
type SheetFixture struct {
	Name  string
	Cells map[string]interface{}
}

// MinimalDocx returns .docx bytes whose body holds one paragraph per entry, in order.
// Paragraph text is XML-escaped.
func MinimalDocx(paragraphs ...string) []byte {
	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		_ = xml.EscapeText(&body, []byte(p))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	ct, _ := w.Create("[Content_Types].xml")
	_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`))
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`))
	_, _ = fw.Write(body.Bytes())
	_, _ = fw.Write([]byte(`</w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

// MinimalXlsx returns .xlsx bytes with the given sheets in order. The first fixture
// renames the default sheet.
func MinimalXlsx(sheets ...SheetFixture) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}
		for ref, v := range s.Cells {
			if err := f.SetCellValue(s.Name, ref, v); err != nil {
				return nil, err
			}
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
