package schema

import (
	"github.com/goliatone/go-promptform/internal/ordered"
)

// FieldType enumerates the answer kinds a field can ask for.
type FieldType string

const (
	// FieldTypeString collects free text.
	FieldTypeString FieldType = "string"
	// FieldTypeInt collects a whole number.
	FieldTypeInt FieldType = "int"
	// FieldTypeFloat collects a decimal number.
	FieldTypeFloat FieldType = "float"
	// FieldTypeBool collects a yes/no answer.
	FieldTypeBool FieldType = "bool"
	// FieldTypeSelect collects exactly one of the declared items.
	FieldTypeSelect FieldType = "select"
	// FieldTypeMultiSelect collects any number of the declared items.
	FieldTypeMultiSelect FieldType = "multiselect"
	// FieldTypeObject groups nested fields under one key.
	FieldTypeObject FieldType = "object"
	// FieldTypeList collects a sequence of entries.
	FieldTypeList FieldType = "list"
)

func (t FieldType) valid() bool {
	switch t {
	case FieldTypeString, FieldTypeInt, FieldTypeFloat, FieldTypeBool,
		FieldTypeSelect, FieldTypeMultiSelect, FieldTypeObject, FieldTypeList:
		return true
	}
	return false
}

// Field describes one answerable node of the document tree. Name is set
// from the key it was authored under, never from the document body.
type Field struct {
	Name        string    `yaml:"-"`
	Type        FieldType `yaml:"type"`
	DisplayName string    `yaml:"display_name,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Prompt      string    `yaml:"prompt,omitempty"`
	CanSkip     bool      `yaml:"can_skip,omitempty"`

	// Items lists the allowed values of a select or multiselect, in
	// authored order.
	Items []string `yaml:"items,omitempty"`
	// Elem is the element type of a list: string (default), int or float.
	Elem FieldType `yaml:"elem,omitempty"`
	// Fields holds the children of an object.
	Fields *Fields `yaml:"fields,omitempty"`
	// Then attaches conditional reveals to a select.
	Then *Conditional `yaml:"then,omitempty"`

	StringConstraints     `yaml:",inline"`
	NumberConstraints     `yaml:",inline"`
	CollectionConstraints `yaml:",inline"`
}

// Title returns the text shown when asking for this field: the explicit
// prompt, the display name, or a label derived from the field name.
func (f *Field) Title() string {
	if f.Prompt != "" {
		return f.Prompt
	}
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return Label(f.Name)
}

// ElemType returns the list element type, defaulting to string.
func (f *Field) ElemType() FieldType {
	if f.Elem == "" {
		return FieldTypeString
	}
	return f.Elem
}

// Conditional reveals additional fields depending on which select item
// was picked. Branches are evaluated in order, first match wins.
type Conditional struct {
	// InsertAtRoot merges the revealed fields into the scope that holds
	// the select, instead of nesting them under the select's name.
	InsertAtRoot bool     `yaml:"insert_at_root,omitempty"`
	If           []Branch `yaml:"if,omitempty"`
}

// Branch pairs one pickable value with the fields it reveals.
type Branch struct {
	Picked string  `yaml:"picked"`
	Fields *Fields `yaml:"fields"`
}

// Match returns the first branch whose Picked equals value, or nil.
func (c *Conditional) Match(value string) *Branch {
	if c == nil {
		return nil
	}
	for i := range c.If {
		if c.If[i].Picked == value {
			return &c.If[i]
		}
	}
	return nil
}

// Fields is the ordered name-to-Field mapping of one scope. Mapping order
// is preserved exactly as authored.
type Fields struct {
	ordered.Map[*Field]
}

// NewFields builds a mapping from the given fields in order. Intended for
// programmatic construction; documents normally decode from YAML.
func NewFields(fields ...*Field) *Fields {
	out := &Fields{}
	for _, field := range fields {
		out.Set(field.Name, field)
	}
	return out
}

// Document is a parsed schema: an ordered field tree plus presentation
// metadata. Run it through Validate (or arrive via Parse/Load, which do)
// before interpretation.
type Document struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Fields      *Fields `yaml:"fields"`
}
