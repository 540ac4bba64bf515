// Package schema models declarative prompt-form documents: ordered field
// definitions with typed constraints and conditional reveal branches keyed
// off select answers. Documents load from YAML or JSON with authored field
// order preserved, and are validated once at load time. Interpretation of
// a validated tree lives in pkg/form.
package schema
