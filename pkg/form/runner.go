package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// Runner interprets a field tree against a Source. A Runner is stateless
// across runs and safe to reuse; each Run builds a fresh Config.
type Runner struct {
	source     Source
	log        zerolog.Logger
	maxRetries int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger attaches a logger. Runs log field visits, skips, reveals and
// validation failures at debug level under a per-run id.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithMaxRetries caps how many invalid answers a single field tolerates
// before the run fails even if the source keeps requesting retries.
// Zero means no cap.
func WithMaxRetries(limit int) Option {
	return func(r *Runner) {
		r.maxRetries = limit
	}
}

// NewRunner constructs a Runner over the given source.
func NewRunner(source Source, options ...Option) (*Runner, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	r := &Runner{source: source, log: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Run visits every field in declared order, collects validated answers,
// applies conditional reveals and returns the accumulated configuration.
// Any abort or unrecovered validation failure discards the partial
// result; the error is all the caller gets.
func (r *Runner) Run(ctx context.Context, fields *schema.Fields) (*Config, error) {
	if ctx == nil {
		return nil, errors.New("form: context is required")
	}
	if fields == nil || fields.Len() == 0 {
		return nil, ErrNoFields
	}

	log := r.log.With().Str("run_id", uuid.NewString()).Logger()
	cfg := &Config{}
	if err := r.runScope(ctx, log, "", fields, cfg); err != nil {
		return nil, err
	}
	log.Debug().Int("fields", cfg.Len()).Msg("run complete")
	return cfg, nil
}

// RunDocument is shorthand for running a parsed document's fields.
func (r *Runner) RunDocument(ctx context.Context, doc *schema.Document) (*Config, error) {
	if doc == nil {
		return nil, errors.New("form: document is required")
	}
	return r.Run(ctx, doc.Fields)
}

func (r *Runner) runScope(ctx context.Context, log zerolog.Logger, scopePath string, fields *schema.Fields, scope *Config) error {
	var failure error
	fields.Visit(func(_ string, field *schema.Field) bool {
		if err := r.runField(ctx, log, scopePath, field, scope); err != nil {
			failure = err
			return false
		}
		return true
	})
	return failure
}

func (r *Runner) runField(ctx context.Context, log zerolog.Logger, scopePath string, field *schema.Field, scope *Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := joinPath(scopePath, field.Name)

	if field.Type == schema.FieldTypeObject {
		return r.runObject(ctx, log, path, field, scope)
	}

	for attempt := 1; ; attempt++ {
		value, err := r.ask(ctx, field)
		if err == nil {
			log.Debug().Str("field", path).Msg("field collected")
			scope.Set(field.Name, value)
			if field.Type == schema.FieldTypeSelect && field.Then != nil {
				picked, _ := value.(string)
				return r.runConditional(ctx, log, scopePath, path, field, picked, scope)
			}
			return nil
		}

		if errors.Is(err, ErrSkip) {
			if field.CanSkip {
				log.Debug().Str("field", path).Msg("field skipped")
				return nil
			}
			err = &ValidationError{
				Field:      path,
				Constraint: ConstraintRequired,
				Detail:     "field cannot be skipped",
			}
		}

		var verr *ValidationError
		if !errors.As(err, &verr) {
			// Abort, cancellation, or a broken source: not recoverable.
			return err
		}
		if verr.Field == "" {
			verr.Field = path
		}
		log.Debug().
			Str("field", path).
			Str("constraint", verr.Constraint).
			Int("attempt", attempt).
			Msg("validation failed")

		if r.maxRetries > 0 && attempt >= r.maxRetries {
			return verr
		}
		notifier, ok := r.source.(RetryNotifier)
		if !ok || !notifier.NotifyInvalid(field, verr) {
			return verr
		}
	}
}

// ask obtains and validates one leaf answer. Validation failures come
// back as *ValidationError; everything else is fatal for the run.
func (r *Runner) ask(ctx context.Context, field *schema.Field) (any, error) {
	switch field.Type {
	case schema.FieldTypeString:
		value, err := r.source.AskString(ctx, field)
		if err != nil {
			return nil, err
		}
		if err := checkString(field, value); err != nil {
			return nil, err
		}
		return value, nil

	case schema.FieldTypeInt:
		value, err := r.source.AskInt(ctx, field)
		if err != nil {
			return nil, err
		}
		if err := checkNumber(field, float64(value), fmt.Sprint(value)); err != nil {
			return nil, err
		}
		return value, nil

	case schema.FieldTypeFloat:
		value, err := r.source.AskFloat(ctx, field)
		if err != nil {
			return nil, err
		}
		if err := checkNumber(field, value, fmt.Sprint(value)); err != nil {
			return nil, err
		}
		return value, nil

	case schema.FieldTypeBool:
		value, err := r.source.AskBool(ctx, field)
		if err != nil {
			return nil, err
		}
		return value, nil

	case schema.FieldTypeSelect:
		value, err := r.source.AskSelect(ctx, field, field.Items)
		if err != nil {
			return nil, err
		}
		if err := checkMembership(field, value); err != nil {
			return nil, err
		}
		return value, nil

	case schema.FieldTypeMultiSelect:
		values, err := r.source.AskMultiSelect(ctx, field, field.Items)
		if err != nil {
			return nil, err
		}
		for _, value := range values {
			if err := checkMembership(field, value); err != nil {
				return nil, err
			}
		}
		if err := checkCount(field, len(values)); err != nil {
			return nil, err
		}
		return append([]string(nil), values...), nil

	case schema.FieldTypeList:
		entries, err := r.source.AskList(ctx, field)
		if err != nil {
			return nil, err
		}
		if err := checkCount(field, len(entries)); err != nil {
			return nil, err
		}
		return convertList(field, entries)

	default:
		return nil, fmt.Errorf("form: field %q has unsupported type %q", field.Name, field.Type)
	}
}

func (r *Runner) runObject(ctx context.Context, log zerolog.Logger, path string, field *schema.Field, scope *Config) error {
	observer, observed := r.source.(ScopeObserver)
	if observed {
		observer.BeginScope(field)
	}
	child := &Config{}
	err := r.runScope(ctx, log, path, field.Fields, child)
	if observed {
		observer.EndScope(field)
	}
	if err != nil {
		return err
	}
	scope.Set(field.Name, child)
	return nil
}

// runConditional reveals the fields of the first branch matching the
// picked value. With insert_at_root the revealed mapping merges into the
// scope holding the select; otherwise it is stored under the select's own
// name, superseding the scalar pick.
func (r *Runner) runConditional(ctx context.Context, log zerolog.Logger, scopePath, path string, field *schema.Field, picked string, scope *Config) error {
	branch := field.Then.Match(picked)
	if branch == nil {
		return nil
	}
	log.Debug().Str("field", path).Str("picked", picked).Msg("branch revealed")

	if field.Then.InsertAtRoot {
		return r.runScope(ctx, log, scopePath, branch.Fields, scope)
	}

	child := &Config{}
	if err := r.runScope(ctx, log, path, branch.Fields, child); err != nil {
		return err
	}
	scope.Set(field.Name, child)
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
