package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptform/pkg/form"
	"github.com/goliatone/go-promptform/pkg/render"
	"github.com/goliatone/go-promptform/pkg/schema"
)

func sourceFields() *schema.Fields {
	return schema.NewFields(
		&schema.Field{Name: "source_id", Type: schema.FieldTypeString},
		&schema.Field{
			Name:  "source_type",
			Type:  schema.FieldTypeSelect,
			Items: []string{"file", "kafka"},
			Then: &schema.Conditional{
				InsertAtRoot: true,
				If: []schema.Branch{
					{
						Picked: "kafka",
						Fields: schema.NewFields(
							&schema.Field{
								Name: "params",
								Type: schema.FieldTypeObject,
								Fields: schema.NewFields(
									&schema.Field{Name: "topic", Type: schema.FieldTypeString},
									&schema.Field{Name: "topics", Type: schema.FieldTypeList},
								),
							},
						),
					},
				},
			},
		},
		&schema.Field{
			Name:  "authentication",
			Type:  schema.FieldTypeSelect,
			Items: []string{"none", "token"},
			Then: &schema.Conditional{
				If: []schema.Branch{
					{
						Picked: "token",
						Fields: schema.NewFields(
							&schema.Field{Name: "token", Type: schema.FieldTypeString},
						),
					},
				},
			},
		},
	)
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/source_id":      {"identifier already taken", " identifier already taken "},
		"#/params/topic":       {"topic does not exist"},
		"params.topics[0]":     {"unknown topic"},
		"authentication/token": {"token expired"},
		"base":                 {"server unavailable"},
		"mystery.path":         {"kept as form level"},
	}

	mapping := render.MapErrorPayload(sourceFields(), payload)

	wantFields := map[string][]string{
		"source_id":            {"identifier already taken"},
		"params.topic":         {"topic does not exist"},
		"params.topics":        {"unknown topic"},
		"authentication.token": {"token expired"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}

	for _, message := range []string{"server unavailable", "kept as form level"} {
		if !containsMessage(mapping.Form, message) {
			t.Fatalf("form-level messages %v missing %q", mapping.Form, message)
		}
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapping := render.MapErrorPayload(sourceFields(), nil)
	if mapping.Fields != nil || mapping.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapping)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors(
		[]string{"first", "  second  "},
		"second", "", "third",
	)
	if diff := cmp.Diff([]string{"first", "second", "third"}, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func containsMessage(messages []string, want string) bool {
	for _, message := range messages {
		if message == want {
			return true
		}
	}
	return false
}

// The full fix-up loop: a server rejects part of a submitted config, the
// rejected paths select a subset of the document, the subset is re-run
// and merged back without disturbing the untouched answers.
func TestRevisitRejectedFields(t *testing.T) {
	ctx := context.Background()
	fields := sourceFields()

	runScript := func(fields *schema.Fields, answers ...form.Answer) *form.Config {
		t.Helper()
		runner, err := form.NewRunner(form.NewScriptedSource(answers...))
		if err != nil {
			t.Fatalf("new runner: %v", err)
		}
		cfg, err := runner.Run(ctx, fields)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return cfg
	}

	cfg := runScript(fields,
		form.Text("my-source"),
		form.Text("kafka"),
		form.Text("events"),
		form.Entries("orders"),
		form.Text("none"),
	)

	payload := map[string][]string{
		"/body/params/topic": {"topic does not exist"},
	}
	mapping := render.MapErrorPayload(fields, payload)

	rejected := make([]string, 0, len(mapping.Fields))
	for path := range mapping.Fields {
		rejected = append(rejected, path)
	}

	subset := schema.Subset(fields, rejected...)
	patch := runScript(subset,
		form.Text("kafka"),
		form.Text("events-v2"),
	)

	cfg.Merge(patch)

	raw, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"source_id":"my-source","source_type":"kafka","params":{"topic":"events-v2","topics":["orders"]},"authentication":"none"}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("revisited config mismatch (-want +got):\n%s", diff)
	}
}
