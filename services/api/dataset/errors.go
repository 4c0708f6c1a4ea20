package dataset

import (
	"errors"
	"fmt"
)

// ErrDataLoad matches every DataLoadError via errors.Is.
var ErrDataLoad = errors.New("data load failed")

// DataLoadError reports a source that is missing, unreadable or malformed.
// Row is 1-based over data rows and zero when the failure is not row specific.
type DataLoadError struct {
	Source string
	Column string
	Row    int
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("load %s: row %d column %q: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }
