package render

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-promptform/pkg/form"
)

// Format selects a serialization for collected configurations.
type Format string

const (
	// FormatJSON emits two-space indented JSON.
	FormatJSON Format = "json"
	// FormatYAML emits a YAML mapping.
	FormatYAML Format = "yaml"
)

// Encode serializes cfg in the given format, consulting the default
// encoder registry. An empty format means JSON.
func Encode(cfg *form.Config, format Format) ([]byte, error) {
	if format == "" {
		format = FormatJSON
	}
	encoder, err := defaultRegistry.Get(format)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(cfg)
}

// EncodeJSON serializes cfg as indented JSON.
func EncodeJSON(cfg *form.Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// EncodeYAML serializes cfg as a YAML mapping.
func EncodeYAML(cfg *form.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
