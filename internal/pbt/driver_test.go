package pbt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
)

func TestBuildDriverEntry_DeclaresExternInputAndCallsProperty(t *testing.T) {
	params := []ParamSpec{
		{Name: "b", Gen: BytesGen{MaxLen: 16}},
	}
	entry := BuildDriverEntry("demo/prop_driver", "demo/prop.check", params, nil)

	require.Equal(t, "demo/prop_driver", entry.ModuleID)
	require.Len(t, entry.Decls, 1)
	require.Equal(t, ast.DeclExtern, entry.Decls[0].Kind)
	require.Equal(t, "input", entry.Decls[0].Name)

	// The outermost form must be the input_view binding.
	outer, ok := entry.Solve.(*ast.List)
	require.True(t, ok)
	head, ok := outer.Head()
	require.True(t, ok)
	require.Equal(t, "let", head)
}

func TestBuildDriverEntry_WrapsCallInBudgetScopeWhenRequested(t *testing.T) {
	params := []ParamSpec{{Name: "x", Gen: I32Gen{Min: -1, Max: 1}}}
	entry := BuildDriverEntry("demo/prop_driver", "demo/prop.check", params, &BudgetScope{AllocBytes: 1})

	require.True(t, containsHead(entry.Solve, "budget.scope_v1"))
}

func containsHead(e ast.Expr, head string) bool {
	list, ok := e.(*ast.List)
	if !ok {
		return false
	}
	if h, ok := list.Head(); ok && h == head {
		return true
	}
	for _, item := range list.Args() {
		if containsHead(item, head) {
			return true
		}
	}
	return false
}
