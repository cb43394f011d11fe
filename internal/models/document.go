// Package models defines the data structures produced by extraction: documents, workbooks, and jobs.
package models

import "strings"

// Document is a word-processing document reduced to its body paragraphs, in order.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is the plain text of one body paragraph. Formatting is discarded.
type Paragraph struct {
	Text string `json:"text"`
}

// Text returns the paragraphs joined by newlines. Empty paragraphs become empty lines.
func (d *Document) Text() string {
	lines := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}
