package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSkip is returned by a Source to decline a skippable field. The
	// runner omits the field's key entirely; nothing is written.
	ErrSkip = errors.New("form: skipped")
	// ErrAborted is returned by a Source when the user abandons the run
	// (for example Ctrl+C). The partial result is discarded.
	ErrAborted = errors.New("form: aborted")
	// ErrNoSource signals runner construction without a Source.
	ErrNoSource = errors.New("form: source is required")
	// ErrNoFields signals a run over an empty field mapping.
	ErrNoFields = errors.New("form: no fields to run")
)

// Constraint names carried by ValidationError.
const (
	ConstraintRequired   = "required"
	ConstraintMinLength  = "min_length"
	ConstraintMaxLength  = "max_length"
	ConstraintRegex      = "regex"
	ConstraintMembership = "membership"
	ConstraintMin        = "min"
	ConstraintMax        = "max"
	ConstraintMinItems   = "min_items"
	ConstraintMaxItems   = "max_items"
	ConstraintBool       = "bool"
	ConstraintInt        = "int"
	ConstraintFloat      = "float"
)

// ValidationError reports an answer that failed a field's constraints.
// It is recoverable: the runner hands it to the source, which decides
// between another attempt and aborting the run.
type ValidationError struct {
	// Field is the dotted path of the field, filled by the runner.
	Field string
	// Constraint names what was violated, one of the Constraint consts.
	Constraint string
	// Value is the offending raw input.
	Value string
	// Allowed lists the valid values for membership failures.
	Allowed []string
	// Detail is a human-readable explanation suitable for re-prompting.
	Detail string
}

func (e *ValidationError) Error() string {
	detail := e.Detail
	if detail == "" && len(e.Allowed) > 0 {
		detail = "must be one of: " + strings.Join(e.Allowed, ", ")
	}
	if detail == "" {
		detail = fmt.Sprintf("%s constraint violated by %q", e.Constraint, e.Value)
	}
	if e.Field == "" {
		return "form: " + detail
	}
	return fmt.Sprintf("form: %s: %s", e.Field, detail)
}
