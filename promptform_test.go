package promptform_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	promptform "github.com/goliatone/go-promptform"
	"github.com/goliatone/go-promptform/pkg/prompt"
	"github.com/goliatone/go-promptform/pkg/testsupport"
	"github.com/google/go-cmp/cmp"
)

func TestLoad_RunsKafkaScenario(t *testing.T) {
	ctx := context.Background()

	doc, err := promptform.Load(ctx, testsupport.SourcesPath())
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Name != "data-sources" {
		t.Fatalf("unexpected document name %q", doc.Name)
	}

	source := promptform.Scripted(
		promptform.Text("my-source"),
		promptform.Text("kafka"),
		promptform.Text("events"),
		promptform.Skip(), // client_log_level
		promptform.Text("yes"),
	)

	cfg, err := promptform.Run(ctx, doc, source)
	if err != nil {
		t.Fatalf("run document: %v", err)
	}
	if source.Remaining() != 0 {
		t.Fatalf("%d scripted answers left unconsumed", source.Remaining())
	}

	raw, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	want := `{"source_id":"my-source","source_type":"kafka","params":{"topic":"events","enable_backfill_mode":true}}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"forms/greeting.yaml": &fstest.MapFile{Data: []byte(`
name: greeting
fields:
  name:
    type: string
`)},
	}

	doc, err := promptform.LoadFS(context.Background(), files, "forms/greeting.yaml")
	if err != nil {
		t.Fatalf("load from fs: %v", err)
	}

	cfg, err := promptform.Run(context.Background(), doc, promptform.Scripted(promptform.Text("Ada")))
	if err != nil {
		t.Fatalf("run document: %v", err)
	}
	if got, _ := cfg.Get("name"); got != "Ada" {
		t.Fatalf("name = %v, want Ada", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := promptform.Load(context.Background(), filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing document")
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	var schemaErr *promptform.SchemaError
	_, err := promptform.Parse([]byte("fields:\n  broken:\n    type: warp\n"))
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a schema error, got %v", err)
	}
}

// stubDriver replays terminal interactions so Interactive can run
// without a TTY.
type stubDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	notices  []string
}

func (d *stubDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("stub: no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *stubDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("stub: no confirm scripted")
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("stub: no selection scripted")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	if next >= len(cfg.Options) {
		return 0, errors.New("stub: scripted selection out of range")
	}
	return next, nil
}

func (d *stubDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("stub: multi-select not scripted")
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.notices = append(d.notices, msg)
	return nil
}

func TestInteractive_DrivesPromptSource(t *testing.T) {
	doc, err := promptform.Load(context.Background(), testsupport.SourcesPath())
	if err != nil {
		t.Fatalf("load document: %v", err)
	}

	driver := &stubDriver{
		inputs:   []string{"my-source", "events"},
		selects:  []int{1, 4}, // kafka, then the appended skip choice
		confirms: []bool{true},
	}

	cfg, err := promptform.Interactive(context.Background(), doc, prompt.WithDriver(driver))
	if err != nil {
		t.Fatalf("interactive run: %v", err)
	}

	raw, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	want := `{"source_id":"my-source","source_type":"kafka","params":{"topic":"events","enable_backfill_mode":true}}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if len(driver.notices) == 0 {
		t.Fatal("expected a section header for the params scope")
	}
}

func TestRun_AbortDiscardsConfig(t *testing.T) {
	doc, err := promptform.Load(context.Background(), testsupport.SourcesPath())
	if err != nil {
		t.Fatalf("load document: %v", err)
	}

	source := promptform.Scripted(
		promptform.Text("my-source"),
		promptform.Abort(),
	)

	cfg, err := promptform.Run(context.Background(), doc, source)
	if !errors.Is(err, promptform.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected no config after an abort, got %v", cfg)
	}
}
