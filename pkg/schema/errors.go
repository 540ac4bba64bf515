package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFields signals a document whose fields mapping is missing or empty.
	ErrNoFields = errors.New("schema: document has no fields")
	// ErrNilSource signals a Load call without a source.
	ErrNilSource = errors.New("schema: source is nil")
	// ErrHTTPDisabled signals a URL source on a loader without HTTP support.
	ErrHTTPDisabled = errors.New("schema: http support disabled")
)

// SchemaError reports a malformed document. It is fatal: a tree that
// failed validation must never reach an interpreter run.
type SchemaError struct {
	// Source is the document location when known (file path, URL).
	Source string
	// Err holds one defect, or several aggregated with multierr.
	Err error
}

func (e *SchemaError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("schema: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
