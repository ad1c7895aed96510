// Package scadspec provides the embedded JSON schema for scadast's AST
// wire format, used by `scadast validate` and available to external
// tooling that consumes scadast_parse output. Adapted from the teacher's
// pkg/uast/pkg/spec (embedded uast-schema.json) to the scadast.File shape.
package scadspec

import "embed"

// SchemaFS contains the embedded scadast AST JSON schema.
//
//go:embed scadast-schema.json
var SchemaFS embed.FS
