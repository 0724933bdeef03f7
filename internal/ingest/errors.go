package ingest

import "fmt"

// Kind classifies which pipeline stage an error escaped from.
type Kind string

const (
	KindExtraction Kind = "extraction"
	KindResolution Kind = "resolution"
	KindStore      Kind = "store"
)

// Error wraps a stage failure that could not be recovered inside the
// pipeline. Recoverable misses (no catalog match, unreachable catalog,
// malformed model output) never become an Error; they are logged and the
// candidate is dropped.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ingest %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
