package schema_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-promptform/pkg/schema"
)

func mustParseFile(t *testing.T, path string) *schema.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	doc, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("Parse(%s) returned error: %v", path, err)
	}
	return doc
}

func TestParse_PreservesAuthoredOrder(t *testing.T) {
	doc := mustParseFile(t, "testdata/sources.yaml")

	if doc.Name != "data-sources" {
		t.Fatalf("doc.Name = %q, want data-sources", doc.Name)
	}
	if diff := cmp.Diff([]string{"source_id", "source_type"}, doc.Fields.Keys()); diff != "" {
		t.Fatalf("root field order mismatch (-want +got):\n%s", diff)
	}

	sourceType, ok := doc.Fields.Get("source_type")
	if !ok {
		t.Fatal("source_type field missing")
	}
	if diff := cmp.Diff([]string{"file", "kafka", "kinesis", "pulsar"}, sourceType.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if sourceType.Then == nil || !sourceType.Then.InsertAtRoot {
		t.Fatal("source_type conditional should insert at root")
	}
	if got := len(sourceType.Then.If); got != 4 {
		t.Fatalf("branch count = %d, want 4", got)
	}

	pulsar := sourceType.Then.Match("pulsar")
	if pulsar == nil {
		t.Fatal("no branch matched pulsar")
	}
	params, ok := pulsar.Fields.Get("params")
	if !ok {
		t.Fatal("pulsar branch has no params field")
	}
	want := []string{"topics", "address", "consumer_name", "authentication"}
	if diff := cmp.Diff(want, params.Fields.Keys()); diff != "" {
		t.Fatalf("pulsar params order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	data := []byte(`{
		"fields": {
			"zulu": {"type": "string"},
			"alpha": {"type": "bool"}
		}
	}`)

	doc, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"zulu", "alpha"}, doc.Fields.Keys()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateFieldName(t *testing.T) {
	data := []byte("fields:\n  one:\n    type: string\n  one:\n    type: bool\n")

	_, err := schema.Parse(data)
	if err == nil {
		t.Fatal("Parse accepted duplicate field names")
	}
	if !strings.Contains(err.Error(), "duplicate field") {
		t.Fatalf("error %q does not mention the duplicate field", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, data := range []string{"", "fields: {}\n", "name: empty\n"} {
		if _, err := schema.Parse([]byte(data)); err == nil {
			t.Fatalf("Parse(%q) accepted a document without fields", data)
		}
	}
}

func TestFields_MarshalRoundTrip(t *testing.T) {
	doc := mustParseFile(t, "testdata/sources.yaml")

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := schema.Parse(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}

	if diff := cmp.Diff(doc.Fields.Keys(), again.Fields.Keys()); diff != "" {
		t.Fatalf("root order changed after round trip (-want +got):\n%s", diff)
	}
	first, _ := doc.Fields.Get("source_type")
	second, _ := again.Fields.Get("source_type")
	kafka := second.Then.Match("kafka")
	if kafka == nil {
		t.Fatal("kafka branch lost in round trip")
	}
	params, _ := kafka.Fields.Get("params")
	wantKafka := []string{"topic", "client_log_level", "enable_backfill_mode"}
	if diff := cmp.Diff(wantKafka, params.Fields.Keys()); diff != "" {
		t.Fatalf("kafka params order changed (-want +got):\n%s", diff)
	}
	if first.Then.InsertAtRoot != second.Then.InsertAtRoot {
		t.Fatal("insert_at_root flag lost in round trip")
	}
}

func TestField_TitleFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{"prompt wins", schema.Field{Name: "x", Prompt: "Type it", DisplayName: "X"}, "Type it"},
		{"display name next", schema.Field{Name: "x", DisplayName: "The X"}, "The X"},
		{"label derived", schema.Field{Name: "client_log_level"}, "Client Log Level"},
		{"camel case", schema.Field{Name: "issuerURL"}, "Issuer Url"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.field.Title(); got != tc.want {
				t.Fatalf("Title() = %q, want %q", got, tc.want)
			}
		})
	}
}
