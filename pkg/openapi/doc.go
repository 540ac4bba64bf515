// Package openapi turns OpenAPI operations into promptable field trees.
// Teams that already describe their APIs can collect request payloads
// interactively without authoring a second document by hand.
package openapi
