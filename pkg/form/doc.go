// Package form interprets a validated schema tree against an answer
// source. The runner owns visiting order, validation and conditional
// reveals; sources own all I/O and retry policy. Results accumulate in an
// ordered Config that serializes in the order answers were given.
package form
