package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when no extractor handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrMainPartNotFound is returned when a .docx package has no main document part.
var ErrMainPartNotFound = errors.New("main document part not found")

// SheetError wraps a failure while reading one sheet of a workbook.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
