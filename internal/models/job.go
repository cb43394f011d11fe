package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// JobKind selects which extractor a job uses.
type JobKind string

const (
	KindDocument JobKind = "document"
	KindWorkbook JobKind = "workbook"
)

// Job pairs an input file with the extractor to run and the output file to write.
// Message is printed to stdout after the output has been written.
type Job struct {
	Input   string  `yaml:"input"`
	Output  string  `yaml:"output"`
	Kind    JobKind `yaml:"kind,omitempty"`
	Message string  `yaml:"message,omitempty"`
}

// KindFromExt infers a job kind from a file extension (with leading dot).
// Returns "" when the extension is not recognized.
func KindFromExt(ext string) JobKind {
	switch strings.ToLower(ext) {
	case ".docx":
		return KindDocument
	case ".xlsx", ".xlsm":
		return KindWorkbook
	default:
		return ""
	}
}

// ResolvedKind returns Kind, or the kind inferred from the input extension when Kind is unset.
func (j *Job) ResolvedKind() JobKind {
	if j.Kind != "" {
		return j.Kind
	}
	return KindFromExt(filepath.Ext(j.Input))
}

// Validate checks that the job names an input, an output, and a known kind.
func (j *Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("job input cannot be empty")
	}
	if j.Output == "" {
		return fmt.Errorf("job %q: output cannot be empty", j.Input)
	}
	switch k := j.ResolvedKind(); k {
	case KindDocument, KindWorkbook:
		return nil
	case "":
		return fmt.Errorf("job %q: cannot infer kind from extension %q", j.Input, filepath.Ext(j.Input))
	default:
		return fmt.Errorf("job %q: unknown kind %q", j.Input, k)
	}
}
