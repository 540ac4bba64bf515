package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// SourcesPath returns the absolute path of the canonical data-sources
// document the suites run against. Resolving through the caller keeps
// the path stable no matter which package's tests are running.
func SourcesPath() string {
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		panic("testsupport: unable to determine file location")
	}
	root := filepath.Join(filepath.Dir(here), "..", "..")
	return filepath.Clean(filepath.Join(root, "pkg", "schema", "testdata", "sources.yaml"))
}

// LoadSources parses the canonical data-sources document.
func LoadSources(t *testing.T) *schema.Document {
	t.Helper()

	data, err := os.ReadFile(SourcesPath())
	if err != nil {
		t.Fatalf("read sources fixture: %v", err)
	}
	doc, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("parse sources fixture: %v", err)
	}
	return doc
}
