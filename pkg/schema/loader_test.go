package schema_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-promptform/pkg/schema"
)

const tinyDoc = "fields:\n  greeting:\n    type: string\n"

func TestLoader_FromFile(t *testing.T) {
	loader := schema.NewLoader()
	doc, err := loader.Load(context.Background(), schema.SourceFromFile("testdata/sources.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Name != "data-sources" {
		t.Fatalf("doc.Name = %q, want data-sources", doc.Name)
	}
	if doc.Fields.Len() != 2 {
		t.Fatalf("field count = %d, want 2", doc.Fields.Len())
	}
}

func TestLoader_FromFS(t *testing.T) {
	files := fstest.MapFS{
		"forms/tiny.yaml": &fstest.MapFile{Data: []byte(tinyDoc)},
	}
	loader := schema.NewLoader(schema.WithFileSystem(files))

	doc, err := loader.Load(context.Background(), schema.SourceFromFS("forms/tiny.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Name != "tiny" {
		t.Fatalf("doc.Name = %q, want tiny (derived from location)", doc.Name)
	}
}

func TestLoader_FromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(tinyDoc))
	}))
	defer server.Close()

	loader := schema.NewLoader(schema.WithHTTPFallback(2 * time.Second))
	doc, err := loader.Load(context.Background(), schema.SourceFromURL(server.URL+"/tiny.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !doc.Fields.Has("greeting") {
		t.Fatal("loaded document is missing the greeting field")
	}
}

func TestLoader_URLDisabledByDefault(t *testing.T) {
	loader := schema.NewLoader()
	_, err := loader.Load(context.Background(), schema.SourceFromURL("http://127.0.0.1:1/doc.yaml"))
	if !errors.Is(err, schema.ErrHTTPDisabled) {
		t.Fatalf("error = %v, want ErrHTTPDisabled", err)
	}
}

func TestLoader_RejectsUnknownExtension(t *testing.T) {
	loader := schema.NewLoader()
	_, err := loader.Load(context.Background(), schema.SourceFromFile("testdata/sources.txt"))
	if err == nil || !strings.Contains(err.Error(), "unsupported document extension") {
		t.Fatalf("error = %v, want unsupported extension", err)
	}
}

func TestLoader_AnnotatesSchemaErrors(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/broken.yaml"
	if err := os.WriteFile(path, []byte("fields:\n  a:\n    type: widget\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := schema.NewLoader()
	_, err := loader.Load(context.Background(), schema.SourceFromFile(path))
	if err == nil {
		t.Fatal("Load accepted an invalid document")
	}
	var serr *schema.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("error %T is not a *SchemaError", err)
	}
	if !strings.Contains(serr.Source, "broken.yaml") {
		t.Fatalf("SchemaError.Source = %q, want the document path", serr.Source)
	}
}

func TestLoader_NilSource(t *testing.T) {
	loader := schema.NewLoader()
	if _, err := loader.Load(context.Background(), nil); !errors.Is(err, schema.ErrNilSource) {
		t.Fatalf("error = %v, want ErrNilSource", err)
	}
}

func TestLoader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := schema.NewLoader()
	_, err := loader.Load(ctx, schema.SourceFromFile("testdata/sources.yaml"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
