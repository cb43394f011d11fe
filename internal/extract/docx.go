package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/hyperjump/doctext/internal/models"
	"go.uber.org/zap"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// partNameRe extracts PartName from Override elements in [Content_Types].xml.
var partNameRe = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// partNameRe2 handles the case where ContentType appears before PartName.
var partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)

// readZipPart returns the contents of the named zip entry, or nil if it is absent.
func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, nil
}

// findDocxMainDocumentPath finds the main document path from [Content_Types].xml.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	ct, err := readZipPart(zr, contentTypesPath)
	if err != nil || ct == nil {
		return ""
	}
	content := string(ct)
	// Try both attribute orders
	if matches := partNameRe.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	if matches := partNameRe2.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	return ""
}

// parseDOCX reads the body paragraphs of .docx bytes. DOCX is a ZIP whose main part
// (normally word/document.xml) holds <w:body> with one <w:p> per paragraph.
func (e *Extractor) parseDOCX(content []byte) (*models.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	// Find main document path from [Content_Types].xml, fall back to default
	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}
	e.debug("docx main part", zap.String("part", docPath))

	docXML, err := readZipPart(zr, docPath)
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: %w", err)
	}
	if docXML == nil {
		return nil, fmt.Errorf("extract DOCX: %w: %s", ErrMainPartNotFound, docPath)
	}
	doc, err := parseDocumentXML(bytes.NewReader(docXML))
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: %w", err)
	}
	e.debug("docx parsed", zap.Int("paragraphs", len(doc.Paragraphs)))
	return doc, nil
}

// parseDocumentXML walks the main part and collects the text of every top-level
// body paragraph. Only runs that are direct children of the paragraph, or of a
// hyperlink inside it, contribute. Tables, text boxes and tracked deletions do not.
func parseDocumentXML(r io.Reader) (*models.Document, error) {
	dec := xml.NewDecoder(r)
	doc := &models.Document{}
	var (
		stack     []string
		para      *strings.Builder
		paraDepth int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if para == nil {
				if isBodyParagraph(stack) {
					para = &strings.Builder{}
					paraDepth = len(stack)
				}
				continue
			}
			name, ok := runChild(stack[paraDepth:])
			if !ok {
				continue
			}
			switch name {
			case "tab", "ptab":
				para.WriteByte('\t')
			case "cr":
				para.WriteByte('\n')
			case "br":
				if isLineBreak(t) {
					para.WriteByte('\n')
				}
			case "noBreakHyphen":
				para.WriteByte('-')
			}
		case xml.CharData:
			if para == nil {
				continue
			}
			if name, ok := runChild(stack[paraDepth:]); ok && name == "t" {
				para.Write(t)
			}
		case xml.EndElement:
			if para != nil && len(stack) == paraDepth {
				doc.Paragraphs = append(doc.Paragraphs, models.Paragraph{Text: para.String()})
				para = nil
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return doc, nil
}

// isBodyParagraph reports whether stack ends at a <w:p> directly under <w:body>.
func isBodyParagraph(stack []string) bool {
	return len(stack) == 3 && stack[0] == "document" && stack[1] == "body" && stack[2] == "p"
}

// runChild returns the local name of a run child given the element path below a paragraph:
// p/r/X or p/hyperlink/r/X.
func runChild(inner []string) (string, bool) {
	switch {
	case len(inner) == 2 && inner[0] == "r":
		return inner[1], true
	case len(inner) == 3 && inner[0] == "hyperlink" && inner[1] == "r":
		return inner[2], true
	default:
		return "", false
	}
}

// isLineBreak reports whether a <w:br> is a text-wrapping break. Page and column breaks carry no text.
func isLineBreak(el xml.StartElement) bool {
	for _, a := range el.Attr {
		if a.Name.Local == "type" {
			return a.Value == "" || a.Value == "textWrapping"
		}
	}
	return true
}
