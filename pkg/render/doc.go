// Package render serializes collected configurations and renders
// human-readable run summaries. Encoders preserve the field order the
// document declared.
package render
