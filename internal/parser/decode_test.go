package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
)

func TestParseEntry_Simple(t *testing.T) {
	doc := []byte(`{
		"schema_version": "x07ast/v1",
		"kind": "entry",
		"module_id": "demo/main",
		"imports": [],
		"decls": [],
		"solve": {"kind": "int", "value": 7, "ptr": "/solve"}
	}`)
	entry, derr := ParseEntry(doc)
	require.Nil(t, derr)
	require.Equal(t, "demo/main", entry.ModuleID)
	lit, ok := entry.Solve.(*ast.Int)
	require.True(t, ok)
	require.Equal(t, int32(7), lit.Value)
}

func TestParseEntry_RejectsUnsupportedSchemaVersion(t *testing.T) {
	doc := []byte(`{
		"schema_version": "x07ast/v99",
		"kind": "entry",
		"module_id": "demo/main",
		"decls": [],
		"solve": {"kind": "int", "value": 1}
	}`)
	_, derr := ParseEntry(doc)
	require.NotNil(t, derr)
	require.Equal(t, "parse", string(derr.Kind))
}

func TestParseEntry_OlderSchemaGetsQuickfix(t *testing.T) {
	doc := []byte(`{
		"schema_version": "x07ast/v0",
		"kind": "entry",
		"module_id": "demo/main",
		"decls": [],
		"solve": {"kind": "int", "value": 1}
	}`)
	_, derr := ParseEntry(doc)
	require.NotNil(t, derr)
	require.NotNil(t, derr.Fix)
	require.Equal(t, "/schema_version", derr.Fix.Patch[0].Path)
}

func TestParseModule_RejectsTapeOnExtern(t *testing.T) {
	doc := []byte(`{
		"schema_version": "x07ast/v1",
		"kind": "module",
		"module_id": "demo/lib",
		"decls": [{
			"decl": "extern",
			"name": "foreign_fn",
			"type_params": [{"name": "A", "bound": "any"}]
		}]
	}`)
	_, derr := ParseModule(doc)
	require.NotNil(t, derr)
}
