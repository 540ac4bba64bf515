package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	promptform "github.com/goliatone/go-promptform"
	"github.com/goliatone/go-promptform/pkg/openapi"
)

// Validates every checked-in document fixture: native form documents
// must pass schema validation, OpenAPI documents must convert to a form
// for each of their operations. Run before committing fixture changes.
func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nValidate form and OpenAPI document fixtures.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"pkg/schema/testdata/sources.yaml",
			"examples/fixtures/sources.yaml",
			"examples/fixtures/sources_api.json",
		}
	}

	ctx := context.Background()
	failed := false
	for _, path := range paths {
		if err := validateFile(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("ok   %s\n", path)
	}

	if failed {
		os.Exit(1)
	}
}

func validateFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if !openapi.Detect(data) {
		_, err := promptform.Parse(data)
		return err
	}

	spec, err := openapi.Load(ctx, data, openapi.WithReferenceResolution())
	if err != nil {
		return err
	}
	operations := spec.Operations()
	if len(operations) == 0 {
		return fmt.Errorf("document declares no operations")
	}
	for _, operation := range operations {
		method, opPath, err := splitOperation(operation)
		if err != nil {
			return err
		}
		if _, err := spec.Form(opPath, method); err != nil {
			return fmt.Errorf("operation %s: %w", operation, err)
		}
	}
	return nil
}

func splitOperation(operation string) (method, path string, err error) {
	var m, p string
	if _, err := fmt.Sscanf(operation, "%s %s", &m, &p); err != nil {
		return "", "", fmt.Errorf("malformed operation %q", operation)
	}
	return m, p, nil
}
