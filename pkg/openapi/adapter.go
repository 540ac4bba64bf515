package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// Document wraps a parsed OpenAPI description so its operations can be
// converted into form documents.
type Document struct {
	spec *openapi3.T
}

// Options configure document loading.
type Options struct {
	// ResolveReferences eagerly resolves $ref pointers, including
	// external ones, and validates the document.
	ResolveReferences bool
}

// Option mutates Options.
type Option func(*Options)

// WithReferenceResolution resolves $ref pointers while loading.
func WithReferenceResolution() Option {
	return func(o *Options) {
		o.ResolveReferences = true
	}
}

// Load parses an OpenAPI document from raw JSON or YAML bytes.
func Load(ctx context.Context, data []byte, options ...Option) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	var opts Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	return &Document{spec: spec}, nil
}

// Operations lists the document's operations as "METHOD path", sorted.
func (d *Document) Operations() []string {
	if d.spec.Paths == nil {
		return nil
	}
	var out []string
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil {
				out = append(out, method+" "+path)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Form converts the request body of one operation into a form document.
// Properties appear alphabetically; OpenAPI object keys carry no order.
// A property is skippable unless its parent lists it as required.
func (d *Document) Form(path, method string) (*schema.Document, error) {
	method = strings.ToUpper(method)
	if d.spec.Paths == nil {
		return nil, errors.New("openapi: document has no paths")
	}
	item := d.spec.Paths.Find(path)
	if item == nil {
		return nil, fmt.Errorf("openapi: path %q not found", path)
	}
	operation := item.GetOperation(method)
	if operation == nil {
		return nil, fmt.Errorf("openapi: no %s operation on %q", method, path)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("openapi: operation %s %s has no request body schema", method, path)
	}
	if kind := firstSchemaType(body.Value.Type); kind != "" && kind != "object" {
		return nil, fmt.Errorf("openapi: request body of %s %s is %q, want object", method, path, kind)
	}

	fields, err := convertObject(body.Value)
	if err != nil {
		return nil, err
	}
	if fields.Len() == 0 {
		return nil, fmt.Errorf("openapi: operation %s %s has no promptable properties", method, path)
	}

	doc := &schema.Document{
		Name:        documentName(operation, path, method),
		Description: documentDescription(operation),
		Fields:      fields,
	}
	if err := schema.Validate(doc.Fields); err != nil {
		return nil, err
	}
	return doc, nil
}

// Detect reports whether raw looks like an OpenAPI document rather than
// a native form document.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

func documentName(op *openapi3.Operation, path, method string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func documentDescription(op *openapi3.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	return op.Description
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return mt.Schema
		}
	}
	for _, mt := range content {
		return mt.Schema
	}
	return nil
}

func convertObject(src *openapi3.Schema) (*schema.Fields, error) {
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := schema.NewFields()
	for _, name := range names {
		field, err := convertProperty(name, src.Properties[name], required[name])
		if err != nil {
			return nil, err
		}
		fields.Set(name, field)
	}
	return fields, nil
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool) (*schema.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: property %q has no schema", name)
	}
	src := ref.Value

	field := &schema.Field{
		Name:        name,
		DisplayName: src.Title,
		Description: src.Description,
		CanSkip:     !required,
	}

	switch kind := firstSchemaType(src.Type); kind {
	case "string", "":
		if len(src.Enum) > 0 {
			field.Type = schema.FieldTypeSelect
			field.Items = stringifyEnum(src.Enum)
		} else {
			field.Type = schema.FieldTypeString
			applyStringConstraints(field, src)
		}
	case "integer":
		field.Type = schema.FieldTypeInt
		applyNumberConstraints(field, src)
	case "number":
		field.Type = schema.FieldTypeFloat
		applyNumberConstraints(field, src)
	case "boolean":
		field.Type = schema.FieldTypeBool
	case "object":
		field.Type = schema.FieldTypeObject
		// Objects are containers; the interpreter always walks them.
		field.CanSkip = false
		children, err := convertObject(src)
		if err != nil {
			return nil, fmt.Errorf("openapi: property %q: %w", name, err)
		}
		field.Fields = children
	case "array":
		if err := applyArray(field, name, src); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("openapi: property %q has unsupported type %q", name, kind)
	}
	return field, nil
}

// applyArray maps enum-backed arrays to multi-selects and everything
// else to lists of the element type.
func applyArray(field *schema.Field, name string, src *openapi3.Schema) error {
	if src.Items == nil || src.Items.Value == nil {
		return fmt.Errorf("openapi: array property %q is missing an items schema", name)
	}
	items := src.Items.Value
	if len(items.Enum) > 0 {
		field.Type = schema.FieldTypeMultiSelect
		field.Items = stringifyEnum(items.Enum)
	} else {
		field.Type = schema.FieldTypeList
		switch kind := firstSchemaType(items.Type); kind {
		case "string", "":
			field.Elem = schema.FieldTypeString
		case "integer":
			field.Elem = schema.FieldTypeInt
		case "number":
			field.Elem = schema.FieldTypeFloat
		default:
			return fmt.Errorf("openapi: array property %q has unsupported element type %q", name, kind)
		}
	}
	applyCollectionConstraints(field, src)
	return nil
}

func applyStringConstraints(field *schema.Field, src *openapi3.Schema) {
	if src.MinLength != 0 {
		value := int(src.MinLength)
		field.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		field.MaxLength = &value
	}
	field.Regexp = src.Pattern
}

func applyNumberConstraints(field *schema.Field, src *openapi3.Schema) {
	if src.Min != nil {
		value := *src.Min
		field.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Max = &value
	}
}

func applyCollectionConstraints(field *schema.Field, src *openapi3.Schema) {
	if src.MinItems != 0 {
		value := int(src.MinItems)
		field.MinItems = &value
	}
	if src.MaxItems != nil {
		value := int(*src.MaxItems)
		field.MaxItems = &value
	}
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
