package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoaderOptions configures how a Loader resolves sources. Loading is
// offline-first: URL sources stay disabled until a client is injected or
// the HTTP fallback is switched on.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS locations.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour
	// (timeouts, proxies). Nil disables URL sources unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback enables a default client when none is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// Logger receives load events; defaults to a no-op logger.
	Logger zerolog.Logger
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceKindFS paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps how long a remote fetch may take. Zero leaves
// the client's own timeout in charge.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithHTTPFallback enables HTTP loading using a default client and
// assigns an optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithLogger attaches a logger to the loader.
func WithLogger(log zerolog.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = log
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{Logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Loader resolves a Source to a parsed, validated Document.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	log       zerolog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	cfg := NewLoaderOptions(options...)

	var client *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if cfg.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = cfg.RequestTimeout
		}
		client = &clone
	case cfg.AllowHTTPFallback:
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Loader{
		fs:        cfg.FileSystem,
		http:      client,
		allowHTTP: client != nil,
		timeout:   cfg.RequestTimeout,
		log:       cfg.Logger,
	}
}

// Load fetches, decodes and validates the document identified by src.
// Validation failures come back as *SchemaError annotated with the
// source location.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := checkExtension(src); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if !l.allowHTTP {
			return nil, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		var serr *SchemaError
		if errors.As(err, &serr) && serr.Source == "" {
			serr.Source = src.Location()
		}
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = nameFromLocation(src.Location())
	}

	l.log.Debug().
		Str("source", src.Location()).
		Str("kind", string(src.Kind())).
		Int("fields", doc.Fields.Len()).
		Msg("schema loaded")

	return doc, nil
}

// checkExtension rejects file-ish locations that are clearly not schema
// documents. URL sources are exempt: endpoints often omit extensions.
func checkExtension(src Source) error {
	if src.Kind() == SourceKindURL {
		return nil
	}
	switch strings.ToLower(filepath.Ext(src.Location())) {
	case ".yaml", ".yml", ".json":
		return nil
	default:
		return fmt.Errorf("schema: unsupported document extension %q", filepath.Ext(src.Location()))
	}
}

func nameFromLocation(location string) string {
	base := path.Base(strings.ReplaceAll(location, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func loadFile(ctx context.Context, filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, errors.New("schema: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("schema: fs path is required")
	}
	if files == nil {
		return nil, errors.New("schema: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return fs.ReadFile(files, name)
}

func loadHTTP(ctx context.Context, client *http.Client, rawURL string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("schema: http client is not configured")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schema: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
