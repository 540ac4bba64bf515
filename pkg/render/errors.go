package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// ErrorMapping splits a server error payload into field-level and
// form-level messages keyed by the dotted paths the interpreter uses.
// Configs collected here are usually posted to some API; when that API
// rejects them, its messages can be folded back onto the fields that
// produced the values.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalizes multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving
// order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalizes server error payloads (JSON pointer paths,
// slash paths, dotted paths) into the dotted field identifiers of the
// given tree. Conditional branches count as declared fields. Paths that
// match nothing are treated as form-level errors so messages are not
// lost.
func MapErrorPayload(fields *schema.Fields, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	fieldPaths := make(map[string]struct{})
	collectFieldPaths(fields, "", fieldPaths)

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, fieldPaths)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, fieldPaths map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	best := ""
	for _, variant := range segmentVariants(segments) {
		if path := longestMatchingPath(variant, fieldPaths); path != "" {
			if best == "" || strings.Count(path, ".") > strings.Count(best, ".") {
				best = path
			}
		}
	}

	if best != "" {
		return best, false
	}
	return "", true
}

// parsePathSegments strips JSON pointer and JSONPath prefixes and splits
// the remainder on dots and slashes. Pointer escapes (~0, ~1) and array
// brackets are unwound.
func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") ||
		strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

// segmentVariants yields the candidate readings of a raw path: as given,
// without leading transport wrappers (body, payload, ...), and without
// numeric list indices.
func segmentVariants(segments []string) [][]string {
	variants := [][]string{segments}

	if dropped := dropWrapperSegments(segments); len(dropped) != len(segments) {
		variants = append(variants, dropped)
		segments = dropped
	}
	if stripped := stripNumericSegments(segments); len(stripped) != len(segments) {
		variants = append(variants, stripped)
	}
	return variants
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatchingPath(segments []string, fieldPaths map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := fieldPaths[candidate]; ok {
			return candidate
		}
	}
	return ""
}

// collectFieldPaths records every dotted path the tree can produce,
// descending into objects and conditional branches. Branches honor
// insert_at_root: revealed fields land beside the select or under its
// name, exactly as the interpreter stores them.
func collectFieldPaths(fields *schema.Fields, prefix string, dest map[string]struct{}) {
	if fields == nil {
		return
	}
	fields.Visit(func(name string, field *schema.Field) bool {
		path := joinFieldPath(prefix, name)
		dest[path] = struct{}{}

		if field.Fields != nil {
			collectFieldPaths(field.Fields, path, dest)
		}
		if field.Then != nil {
			branchPrefix := path
			if field.Then.InsertAtRoot {
				branchPrefix = prefix
			}
			for i := range field.Then.If {
				collectFieldPaths(field.Then.If[i].Fields, branchPrefix, dest)
			}
		}
		return true
	})
}

func joinFieldPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
