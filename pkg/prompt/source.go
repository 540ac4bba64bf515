package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-promptform/pkg/form"
	"github.com/goliatone/go-promptform/pkg/schema"
)

// skipOption is appended to a skippable select's choices.
const skipOption = "(skip)"

// Source answers field questions at a terminal through survey prompts.
// Invalid answers are reported inline and asked again; an interrupt
// surfaces as form.ErrAborted and ends the run.
//
// Skip semantics per prompt kind: text and number prompts skip on an
// empty answer, selects grow a "(skip)" choice, multi-selects and lists
// skip when nothing was picked or entered. Confirm prompts always
// produce an answer.
type Source struct {
	driver   Driver
	theme    Theme
	quiet    bool
	pageSize int
	useFuzzy bool
}

var (
	_ form.Source        = (*Source)(nil)
	_ form.RetryNotifier = (*Source)(nil)
	_ form.ScopeObserver = (*Source)(nil)
)

// New builds a Source speaking to the current terminal.
func New(options ...Option) *Source {
	s := &Source{
		driver: newSurveyDriver(),
		theme:  DefaultTheme(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Source) AskString(ctx context.Context, field *schema.Field) (string, error) {
	answer, err := s.driver.Input(ctx, s.inputConfig(field))
	if err != nil {
		return "", err
	}
	if field.CanSkip && strings.TrimSpace(answer) == "" {
		return "", form.ErrSkip
	}
	return answer, nil
}

func (s *Source) AskInt(ctx context.Context, field *schema.Field) (int64, error) {
	cfg := s.inputConfig(field)
	cfg.Validator = func(raw string) error {
		if field.CanSkip && strings.TrimSpace(raw) == "" {
			return nil
		}
		_, err := form.ParseInt(raw)
		return err
	}
	answer, err := s.driver.Input(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if field.CanSkip && strings.TrimSpace(answer) == "" {
		return 0, form.ErrSkip
	}
	return form.ParseInt(answer)
}

func (s *Source) AskFloat(ctx context.Context, field *schema.Field) (float64, error) {
	cfg := s.inputConfig(field)
	cfg.Validator = func(raw string) error {
		if field.CanSkip && strings.TrimSpace(raw) == "" {
			return nil
		}
		_, err := form.ParseFloat(raw)
		return err
	}
	answer, err := s.driver.Input(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if field.CanSkip && strings.TrimSpace(answer) == "" {
		return 0, form.ErrSkip
	}
	return form.ParseFloat(answer)
}

func (s *Source) AskBool(ctx context.Context, field *schema.Field) (bool, error) {
	return s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.title(field),
		Help:    sanitizeText(field.Description),
	})
}

func (s *Source) AskSelect(ctx context.Context, field *schema.Field, items []string) (string, error) {
	options := append([]string(nil), items...)
	if field.CanSkip {
		options = append(options, skipOption)
	}
	idx, err := s.driver.Select(ctx, s.selectConfig(field, options))
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: selection out of range for %q", field.Name)
	}
	if field.CanSkip && idx == len(items) {
		return "", form.ErrSkip
	}
	return options[idx], nil
}

func (s *Source) AskMultiSelect(ctx context.Context, field *schema.Field, items []string) ([]string, error) {
	indices, err := s.driver.MultiSelect(ctx, s.selectConfig(field, items))
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 && field.CanSkip {
		return nil, form.ErrSkip
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(items) {
			out = append(out, items[idx])
		}
	}
	return out, nil
}

func (s *Source) AskList(ctx context.Context, field *schema.Field) ([]string, error) {
	var entries []string
	for {
		cfg := InputConfig{
			Message: fmt.Sprintf("%s (%d)", s.title(field), len(entries)+1),
			Help:    joinHelp(sanitizeText(field.Description), "leave empty to finish"),
		}
		entry, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(entry) == "" {
			break
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 && field.CanSkip {
		return nil, form.ErrSkip
	}
	return entries, nil
}

// NotifyInvalid prints the failure and asks the runner to repeat the
// question. Interactive sessions retry until interrupted.
func (s *Source) NotifyInvalid(_ *schema.Field, err error) bool {
	_ = s.driver.Info(context.Background(), s.theme.Invalid.Render(err.Error()))
	return true
}

// BeginScope prints a styled section header before an object's fields.
func (s *Source) BeginScope(field *schema.Field) {
	if s.quiet {
		return
	}
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(s.theme.Title.Render(s.title(field)))
	if desc := sanitizeText(field.Description); desc != "" {
		b.WriteByte('\n')
		b.WriteString(s.theme.Description.Render(desc))
	}
	_ = s.driver.Info(context.Background(), b.String())
}

func (s *Source) EndScope(*schema.Field) {}

func (s *Source) title(field *schema.Field) string {
	return sanitizeText(field.Title())
}

func (s *Source) inputConfig(field *schema.Field) InputConfig {
	help := sanitizeText(field.Description)
	if field.CanSkip {
		help = joinHelp(help, "leave empty to skip")
	}
	return InputConfig{
		Message: s.title(field),
		Help:    help,
	}
}

func (s *Source) selectConfig(field *schema.Field, options []string) SelectConfig {
	cfg := SelectConfig{
		Message:  s.title(field),
		Options:  options,
		Help:     sanitizeText(field.Description),
		PageSize: s.pageSize,
	}
	if s.useFuzzy {
		cfg.Filter = fuzzyFilter
	}
	return cfg
}

// fuzzyFilter narrows select options with subsequence matching, so
// "clog" still finds "client_log_level".
func fuzzyFilter(filter, value string, _ int) bool {
	if filter == "" {
		return true
	}
	return len(fuzzy.Find(filter, []string{value})) > 0
}

func joinHelp(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " (" + b + ")"
}
