package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a schema document. YAML and JSON are both
// accepted. A nil error guarantees the tree is safe to interpret.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Err: fmt.Errorf("decode: %w", err)}
	}
	if doc.Fields == nil || doc.Fields.Len() == 0 {
		return nil, &SchemaError{Err: ErrNoFields}
	}
	if err := Validate(doc.Fields); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UnmarshalYAML decodes a fields mapping while preserving key order. Each
// key becomes the Name of its decoded field.
func (f *Fields) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: fields must be a mapping (line %d)", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]
		field := new(Field)
		if err := valueNode.Decode(field); err != nil {
			return fmt.Errorf("schema: field %q: %w", keyNode.Value, err)
		}
		field.Name = keyNode.Value
		if f.Has(field.Name) {
			return fmt.Errorf("schema: duplicate field %q (line %d)", keyNode.Value, keyNode.Line)
		}
		f.Set(field.Name, field)
	}
	return nil
}

// MarshalYAML re-emits the mapping in its preserved order so documents
// round-trip without reordering.
func (f *Fields) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var encodeErr error
	f.Visit(func(name string, field *Field) bool {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(field); err != nil {
			encodeErr = fmt.Errorf("schema: encode field %q: %w", name, err)
			return false
		}
		node.Content = append(node.Content, keyNode, valueNode)
		return true
	})
	if encodeErr != nil {
		return nil, encodeErr
	}
	return node, nil
}
