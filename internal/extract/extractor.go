// Package extract converts .docx documents and .xlsx workbooks into plain text.
package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/doctext/internal/models"
	"go.uber.org/zap"
)

// Extractor extracts plain text from document files.
type Extractor struct {
	logger *zap.Logger // optional; when set, logs debug events
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets a logger for debug output (parts resolved, sheet ranges, etc.).
func WithLogger(l *zap.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = l }
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the file at path and returns its text, choosing the extractor from the extension.
func (e *Extractor) Extract(path string) (string, error) {
	return e.ExtractKind(path, models.KindFromExt(filepath.Ext(path)))
}

// ExtractKind reads the file at path and returns its text using the extractor for kind.
func (e *Extractor) ExtractKind(path string, kind models.JobKind) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, kind)
}

// ExtractBytes extracts text from content with the extractor for kind.
func (e *Extractor) ExtractBytes(content []byte, kind models.JobKind) (string, error) {
	switch kind {
	case models.KindDocument:
		doc, err := e.parseDOCX(content)
		if err != nil {
			return "", err
		}
		return doc.Text(), nil
	case models.KindWorkbook:
		wb, err := e.parseExcel(content)
		if err != nil {
			return "", err
		}
		return wb.Text(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
}

// ExtractDocument reads a .docx file and returns its body paragraphs.
func (e *Extractor) ExtractDocument(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.parseDOCX(content)
}

// ExtractWorkbook reads an .xlsx file and returns its sheets.
func (e *Extractor) ExtractWorkbook(path string) (*models.Workbook, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.parseExcel(content)
}

func (e *Extractor) debug(msg string, fields ...zap.Field) {
	if e.logger != nil {
		e.logger.Debug(msg, fields...)
	}
}
