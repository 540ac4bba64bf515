package form

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-promptform/internal/ordered"
)

// orderedMap lets Config embed the ordered map without the embedded
// field name colliding with the Map method.
type orderedMap = ordered.Map[any]

// Config is the ordered result of one run. Field names map to scalars,
// nested *Config values, or slices, mirroring the part of the tree that
// was actually visited. Skipped fields contribute no key.
type Config struct {
	orderedMap
}

// MarshalJSON emits the mapping with keys in collection order.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var marshalErr error
	c.Visit(func(key string, value any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		keyData, err := json.Marshal(key)
		if err != nil {
			marshalErr = err
			return false
		}
		valueData, err := json.Marshal(value)
		if err != nil {
			marshalErr = fmt.Errorf("form: marshal %q: %w", key, err)
			return false
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		buf.Write(valueData)
		return true
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits the mapping with keys in collection order.
func (c *Config) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var encodeErr error
	c.Visit(func(key string, value any) bool {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			encodeErr = fmt.Errorf("form: encode %q: %w", key, err)
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

// Merge folds other into c. Shared keys are replaced in place, keeping
// their original position; nested configs merge recursively; new keys
// append. Useful for folding a partial re-run back into an earlier
// result.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	other.Visit(func(key string, value any) bool {
		if incoming, ok := value.(*Config); ok {
			if existing, found := c.Get(key); found {
				if current, ok := existing.(*Config); ok {
					current.Merge(incoming)
					return true
				}
			}
		}
		c.Set(key, value)
		return true
	})
}

// Map flattens the configuration into plain nested maps. Key order is
// lost; prefer Visit or the marshalers when order matters.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, c.Len())
	c.Visit(func(key string, value any) bool {
		if nested, ok := value.(*Config); ok {
			out[key] = nested.Map()
			return true
		}
		out[key] = value
		return true
	})
	return out
}

// DecodeInto funnels the configuration into a typed struct. Struct fields
// match on their json tag, falling back to the field name.
func (c *Config) DecodeInto(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("form: build decoder: %w", err)
	}
	if err := decoder.Decode(c.Map()); err != nil {
		return fmt.Errorf("form: decode config: %w", err)
	}
	return nil
}
