package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-promptform/pkg/form"
	"github.com/goliatone/go-promptform/pkg/schema"
)

// DefaultSummaryTemplate lists every collected field as one row, nested
// scopes indented beneath their parent.
const DefaultSummaryTemplate = `{{ title }}
{% for row in rows %}{{ row.indent }}{{ row.name }}:{% if row.value %} {{ row.value }}{% endif %}
{% endfor %}`

// Summary renders a collected configuration into text for confirmation
// screens and logs. Templates receive "title", "description" and "rows";
// each row carries "indent", "name" and "value".
type Summary struct {
	tmpl *pongo2.Template
}

type summaryConfig struct {
	template string
	file     string
}

// SummaryOption configures a Summary.
type SummaryOption func(*summaryConfig)

// WithTemplate replaces the default template text.
func WithTemplate(text string) SummaryOption {
	return func(cfg *summaryConfig) {
		if text != "" {
			cfg.template = text
		}
	}
}

// WithTemplateFile loads the template from disk instead.
func WithTemplateFile(path string) SummaryOption {
	return func(cfg *summaryConfig) {
		cfg.file = strings.TrimSpace(path)
	}
}

// NewSummary compiles the summary template once for reuse across runs.
func NewSummary(options ...SummaryOption) (*Summary, error) {
	cfg := &summaryConfig{template: DefaultSummaryTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var (
		tmpl *pongo2.Template
		err  error
	)
	if cfg.file != "" {
		tmpl, err = pongo2.FromFile(cfg.file)
	} else {
		tmpl, err = pongo2.FromString(cfg.template)
	}
	if err != nil {
		return nil, fmt.Errorf("render: compile summary template: %w", err)
	}
	return &Summary{tmpl: tmpl}, nil
}

// Render produces the summary text for one run's result.
func (s *Summary) Render(doc *schema.Document, cfg *form.Config) (string, error) {
	title := "Summary"
	description := ""
	if doc != nil {
		if doc.Name != "" {
			title = doc.Name
		}
		description = doc.Description
	}

	out, err := s.tmpl.Execute(pongo2.Context{
		"title":       title,
		"description": description,
		"rows":        flattenRows(cfg, 0),
	})
	if err != nil {
		return "", fmt.Errorf("render: execute summary template: %w", err)
	}
	return out, nil
}

func flattenRows(cfg *form.Config, depth int) []map[string]any {
	var rows []map[string]any
	if cfg == nil {
		return rows
	}
	indent := strings.Repeat("  ", depth)
	cfg.Visit(func(key string, value any) bool {
		if nested, ok := value.(*form.Config); ok {
			rows = append(rows, map[string]any{"indent": indent, "name": key, "value": ""})
			rows = append(rows, flattenRows(nested, depth+1)...)
			return true
		}
		rows = append(rows, map[string]any{"indent": indent, "name": key, "value": formatValue(value)})
		return true
	})
	return rows
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
