package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/x07lang/x07ast/internal/diag"
)

var (
	compileOnce  sync.Once
	docSchema    *jsonschema.Schema
	exprSchema   *jsonschema.Schema
	compileError error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	must := func(name, src string) *jsonschema.Schema {
		if compileError != nil {
			return nil
		}
		if err := compiler.AddResource(name, mustDecode(src)); err != nil {
			compileError = err
			return nil
		}
		s, err := compiler.Compile(name)
		if err != nil {
			compileError = err
		}
		return s
	}
	docSchema = must("document.json", documentSchemaJSON)
	exprSchema = must("expr.json", exprSchemaJSON)
}

func mustDecode(src string) any {
	var v any
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		panic(err)
	}
	return v
}

// ValidateStructure runs the fast gjson pre-scan for schema_version/
// kind (early rejection of unsupported documents without a full
// decode) followed by the full JSON-Schema structural
// pass. It returns a *diag.Error with a JSON-Patch quickfix when the
// document declares a recognised-but-older schema version.
func ValidateStructure(raw []byte) *diag.Error {
	compileOnce.Do(compileSchemas)
	if compileError != nil {
		return diag.New(diag.Internal, "X07-INT-0001", "parser",
			"schema compiler failed to initialize: "+compileError.Error())
	}

	sv := gjson.GetBytes(raw, "schema_version")
	if !sv.Exists() {
		return diag.New(diag.Parse, diag.CodeMissingField, "parser",
			"document is missing required field schema_version")
	}
	if got := sv.String(); got != SupportedSchemaMajorMinor {
		if isRecognisedOlder(got) {
			patched, _ := sjson.SetBytes(raw, "schema_version", SupportedSchemaMajorMinor)
			_ = patched // the patched document is reconstructible by the caller from Fix.Patch
			return diag.New(diag.Parse, diag.CodeSchemaVersionUnsupported, "parser",
				fmt.Sprintf("schema_version %q is older than the supported %q", got, SupportedSchemaMajorMinor)).
				WithFix(&diag.QuickFix{
					Suggestion: "upgrade schema_version in place",
					Confidence: 1.0,
					Patch: []diag.Patch{
						{Op: "replace", Path: "/schema_version", Value: SupportedSchemaMajorMinor},
					},
				})
		}
		return diag.New(diag.Parse, diag.CodeSchemaVersionUnsupported, "parser",
			fmt.Sprintf("unsupported schema_version %q, want %q", got, SupportedSchemaMajorMinor))
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return diag.New(diag.Parse, diag.CodeMalformedDocument, "parser",
			"document is not valid JSON: "+err.Error())
	}
	if err := docSchema.Validate(generic); err != nil {
		return diag.New(diag.Parse, diag.CodeMalformedDocument, "parser", err.Error())
	}
	return nil
}

// recognisedOlderVersions are schema versions this validator knows
// how to quickfix in place. Anything else is rejected outright.
var recognisedOlderVersions = []string{"x07ast/v0", "x07ast/v0.9"}

func isRecognisedOlder(v string) bool {
	for _, r := range recognisedOlderVersions {
		if v == r {
			return true
		}
	}
	return false
}

func validateExprShape(raw []byte) error {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	return exprSchema.Validate(generic)
}

// ensureNoReservedMarker rejects module-qualified symbol names that
// collide with the monomorphiser's mangle marker.
func ensureNoReservedMarker(name string) error {
	if strings.Contains(name, "$mono$") {
		return fmt.Errorf("symbol name %q contains the reserved mangle marker \"$mono$\"", name)
	}
	return nil
}
