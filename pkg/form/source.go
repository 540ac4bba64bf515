package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// Source supplies raw answers for fields. Implementations own all I/O;
// the runner only asks, validates and accumulates. Returning ErrSkip
// declines a field the schema marks skippable. Returning ErrAborted, or
// any other error, abandons the run immediately.
type Source interface {
	AskString(ctx context.Context, field *schema.Field) (string, error)
	AskInt(ctx context.Context, field *schema.Field) (int64, error)
	AskFloat(ctx context.Context, field *schema.Field) (float64, error)
	AskBool(ctx context.Context, field *schema.Field) (bool, error)
	AskSelect(ctx context.Context, field *schema.Field, items []string) (string, error)
	AskMultiSelect(ctx context.Context, field *schema.Field, items []string) ([]string, error)
	AskList(ctx context.Context, field *schema.Field) ([]string, error)
}

// RetryNotifier lets a source observe a validation failure and decide
// whether the runner should ask the same field again. Sources that do not
// implement it fail fast on the first invalid answer.
type RetryNotifier interface {
	NotifyInvalid(field *schema.Field, err error) bool
}

// ScopeObserver receives enter/leave notifications around object fields
// so interactive sources can print section headers.
type ScopeObserver interface {
	BeginScope(field *schema.Field)
	EndScope(field *schema.Field)
}

// ParseBool coerces a yes/no style token. Accepted, case-insensitively:
// y, yes, true, 1, n, no, false, 0.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, &ValidationError{
		Constraint: ConstraintBool,
		Value:      raw,
		Detail:     fmt.Sprintf("%q is not a yes/no value", raw),
	}
}

// ParseInt coerces a whole-number token.
func ParseInt(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ValidationError{
			Constraint: ConstraintInt,
			Value:      raw,
			Detail:     fmt.Sprintf("%q is not a whole number", raw),
		}
	}
	return value, nil
}

// ParseFloat coerces a decimal token.
func ParseFloat(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{
			Constraint: ConstraintFloat,
			Value:      raw,
			Detail:     fmt.Sprintf("%q is not a number", raw),
		}
	}
	return value, nil
}

// Answer is one scripted reply. Build them with Text, Entries, Skip and
// Abort.
type Answer struct {
	skip  bool
	abort bool
	text  string
	list  []string
}

// Text answers string, int, float, bool and select questions.
func Text(value string) Answer {
	return Answer{text: value}
}

// Entries answers list and multiselect questions.
func Entries(values ...string) Answer {
	return Answer{list: values}
}

// Skip declines a skippable field.
func Skip() Answer {
	return Answer{skip: true}
}

// Abort abandons the run at this point of the script.
func Abort() Answer {
	return Answer{abort: true}
}

// ScriptedSource replays pre-recorded answers in visiting order. It never
// retries: the first validation failure surfaces immediately, which suits
// tests and non-interactive callers that already know their answers.
type ScriptedSource struct {
	answers []Answer
	pos     int
}

var _ Source = (*ScriptedSource)(nil)

// NewScriptedSource builds a source that replays answers in order.
func NewScriptedSource(answers ...Answer) *ScriptedSource {
	return &ScriptedSource{answers: answers}
}

// Remaining reports how many scripted answers were never consumed.
func (s *ScriptedSource) Remaining() int {
	return len(s.answers) - s.pos
}

// take consumes the next answer, translating skip and abort markers into
// their signal errors.
func (s *ScriptedSource) take(field *schema.Field) (Answer, error) {
	if s.pos >= len(s.answers) {
		return Answer{}, fmt.Errorf("form: no answer scripted for field %q", field.Name)
	}
	answer := s.answers[s.pos]
	s.pos++
	switch {
	case answer.abort:
		return Answer{}, ErrAborted
	case answer.skip:
		return Answer{}, ErrSkip
	}
	return answer, nil
}

func (s *ScriptedSource) AskString(_ context.Context, field *schema.Field) (string, error) {
	answer, err := s.take(field)
	if err != nil {
		return "", err
	}
	return answer.text, nil
}

func (s *ScriptedSource) AskInt(_ context.Context, field *schema.Field) (int64, error) {
	answer, err := s.take(field)
	if err != nil {
		return 0, err
	}
	return ParseInt(answer.text)
}

func (s *ScriptedSource) AskFloat(_ context.Context, field *schema.Field) (float64, error) {
	answer, err := s.take(field)
	if err != nil {
		return 0, err
	}
	return ParseFloat(answer.text)
}

func (s *ScriptedSource) AskBool(_ context.Context, field *schema.Field) (bool, error) {
	answer, err := s.take(field)
	if err != nil {
		return false, err
	}
	return ParseBool(answer.text)
}

func (s *ScriptedSource) AskSelect(_ context.Context, field *schema.Field, _ []string) (string, error) {
	answer, err := s.take(field)
	if err != nil {
		return "", err
	}
	return answer.text, nil
}

func (s *ScriptedSource) AskMultiSelect(_ context.Context, field *schema.Field, _ []string) ([]string, error) {
	answer, err := s.take(field)
	if err != nil {
		return nil, err
	}
	return answer.list, nil
}

func (s *ScriptedSource) AskList(_ context.Context, field *schema.Field) ([]string, error) {
	answer, err := s.take(field)
	if err != nil {
		return nil, err
	}
	return answer.list, nil
}
