package promptform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-promptform/pkg/form"
	"github.com/goliatone/go-promptform/pkg/prompt"
	"github.com/goliatone/go-promptform/pkg/schema"
)

// Aliases exported via the root package so most callers only import it.
type (
	// Document is a parsed form document.
	Document = schema.Document
	// Field describes one answerable node of a document.
	Field = schema.Field
	// Fields is an ordered field mapping.
	Fields = schema.Fields
	// SchemaError reports a document that failed validation.
	SchemaError = schema.SchemaError
	// Config is the ordered result of a run.
	Config = form.Config
	// Source supplies answers to the interpreter.
	Source = form.Source
	// ValidationError reports an answer that failed a constraint.
	ValidationError = form.ValidationError
	// Runner interprets documents against a source.
	Runner = form.Runner
	// Answer is one scripted reply.
	Answer = form.Answer
)

var (
	// ErrSkip declines a skippable field.
	ErrSkip = form.ErrSkip
	// ErrAborted abandons a run, discarding the partial result.
	ErrAborted = form.ErrAborted
)

// Scripted answer constructors, re-exported from pkg/form.
var (
	Text    = form.Text
	Entries = form.Entries
	Skip    = form.Skip
	Abort   = form.Abort
)

// Load reads and validates a form document from a file path.
func Load(ctx context.Context, path string, options ...schema.LoaderOption) (*Document, error) {
	return schema.NewLoader(options...).Load(ctx, schema.SourceFromFile(path))
}

// LoadFS reads and validates a form document from an fs.FS.
func LoadFS(ctx context.Context, files fs.FS, name string, options ...schema.LoaderOption) (*Document, error) {
	options = append(options, schema.WithFileSystem(files))
	return schema.NewLoader(options...).Load(ctx, schema.SourceFromFS(name))
}

// LoadURL fetches and validates a form document over HTTP.
func LoadURL(ctx context.Context, rawURL string, options ...schema.LoaderOption) (*Document, error) {
	options = append(options, schema.WithHTTPFallback(0))
	return schema.NewLoader(options...).Load(ctx, schema.SourceFromURL(rawURL))
}

// Parse decodes and validates a form document from raw bytes.
func Parse(data []byte) (*Document, error) {
	return schema.Parse(data)
}

// Run interprets a document against the given answer source and returns
// the collected configuration.
func Run(ctx context.Context, doc *Document, source Source, options ...form.Option) (*Config, error) {
	runner, err := form.NewRunner(source, options...)
	if err != nil {
		return nil, err
	}
	return runner.RunDocument(ctx, doc)
}

// Interactive prompts the current user for every field of doc at the
// terminal and returns the collected configuration. It is the simplest
// entry point for callers that just want answers; anyone needing runner
// options composes prompt.New with Run instead.
func Interactive(ctx context.Context, doc *Document, options ...prompt.Option) (*Config, error) {
	return Run(ctx, doc, prompt.New(options...))
}

// Scripted builds a source replaying pre-recorded answers in order.
func Scripted(answers ...Answer) *form.ScriptedSource {
	return form.NewScriptedSource(answers...)
}
