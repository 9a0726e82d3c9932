package parser

// SupportedSchemaMajorMinor is the schema_version this validator
// accepts without a quickfix. Documents declaring an older but
// recognised version are still rejected but the
// rejection carries a JSON-Patch quickfix describing the in-place
// upgrade; documents declaring a newer or unrecognised major version
// are rejected outright.
const SupportedSchemaMajorMinor = "x07ast/v1"

// documentSchemaJSON is the structural JSON Schema every module/entry
// document must satisfy before AST decoding is attempted. Validated
// with github.com/santhosh-tekuri/jsonschema/v6, continuing the
// teacher's pack-wide convention (goadesign-goa-ai) of gating
// untrusted JSON documents with a JSON-Schema pass before semantic
// decode.
const documentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["schema_version", "kind", "module_id", "decls"],
  "properties": {
    "schema_version": {"type": "string"},
    "kind": {"type": "string", "enum": ["module", "entry"]},
    "module_id": {"type": "string", "minLength": 1},
    "imports": {"type": "array", "items": {"type": "string"}},
    "decls": {"type": "array"},
    "solve": {}
  },
  "if": {"properties": {"kind": {"const": "entry"}}},
  "then": {"required": ["solve"]}
}`

const exprSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kind"],
  "properties": {
    "kind": {"type": "string", "enum": ["int", "ident", "list"]},
    "ptr": {"type": "string"}
  }
}`
