package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-promptform/pkg/form"
)

// Encoder serializes a collected configuration into one output format.
type Encoder interface {
	Format() Format
	Encode(cfg *form.Config) ([]byte, error)
}

// EncoderFunc adapts a plain function into an Encoder.
func EncoderFunc(format Format, encode func(*form.Config) ([]byte, error)) Encoder {
	return funcEncoder{format: format, encode: encode}
}

type funcEncoder struct {
	format Format
	encode func(*form.Config) ([]byte, error)
}

func (e funcEncoder) Format() Format { return e.format }

func (e funcEncoder) Encode(cfg *form.Config) ([]byte, error) { return e.encode(cfg) }

// Registry stores encoders by format, providing discovery and duplication
// safeguards. The package ships a default registry preloaded with the
// built-in formats; isolated registries suit callers that add their own.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Format]Encoder
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[Format]Encoder),
	}
}

// Register adds an encoder under its Format(). Duplicate formats return
// an error.
func (r *Registry) Register(encoder Encoder) error {
	if encoder == nil {
		return fmt.Errorf("render: encoder is required")
	}
	format := encoder.Format()
	if format == "" {
		return fmt.Errorf("render: encoder format is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[format]; exists {
		return fmt.Errorf("render: encoder %q already registered", format)
	}

	r.encoders[format] = encoder
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(encoder Encoder) {
	if err := r.Register(encoder); err != nil {
		panic(err)
	}
}

// Get retrieves an encoder by format.
func (r *Registry) Get(format Format) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encoder, ok := r.encoders[format]
	if !ok {
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
	return encoder, nil
}

// List returns the registered formats sorted by name.
func (r *Registry) List() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.encoders))
	for format := range r.encoders {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

var defaultRegistry = builtinRegistry()

func builtinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(EncoderFunc(FormatJSON, EncodeJSON))
	r.MustRegister(EncoderFunc(FormatYAML, EncodeYAML))
	return r
}

// Register adds an encoder to the package default registry, making its
// format available through Encode.
func Register(encoder Encoder) error {
	return defaultRegistry.Register(encoder)
}

// Formats lists the formats Encode currently accepts.
func Formats() []Format {
	return defaultRegistry.List()
}
