package link

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/program"
)

func TestLink_MergesAndQualifies(t *testing.T) {
	libMod := &ast.Module{
		ModuleID: "lib/math",
		Decls: []ast.Decl{
			{Kind: ast.DeclExport, Name: "square"},
			{Kind: ast.DeclDefn, Name: "square",
				Params: []ast.Param{{Name: "x", TypeRef: "i32"}},
				Body:   &ast.Ident{Name: "x"}},
		},
	}
	entry := &ast.Entry{
		ModuleID: "demo/main",
		Imports:  []string{"lib/math"},
		Solve: &ast.List{Items: []ast.Expr{
			&ast.Ident{Name: "lib/math.square"},
			&ast.Int{Value: 3},
		}},
	}

	prog, derr := Link(entry, ModuleSet{"lib/math": libMod})
	require.Nil(t, derr)
	require.Contains(t, prog.Decls, program.Qualify("lib/math", "square"))
}

func TestLink_RejectsUnexportedCrossModuleCall(t *testing.T) {
	libMod := &ast.Module{
		ModuleID: "lib/math",
		Decls: []ast.Decl{
			{Kind: ast.DeclDefn, Name: "hidden", Body: &ast.Int{Value: 1}},
		},
	}
	entry := &ast.Entry{
		ModuleID: "demo/main",
		Imports:  []string{"lib/math"},
		Solve: &ast.List{Items: []ast.Expr{
			&ast.Ident{Name: "lib/math.hidden"},
		}},
	}
	_, derr := Link(entry, ModuleSet{"lib/math": libMod})
	require.NotNil(t, derr)
}

func TestLink_DetectsDuplicateSymbols(t *testing.T) {
	entry := &ast.Entry{
		ModuleID: "demo/main",
		Decls: []ast.Decl{
			{Kind: ast.DeclDefn, Name: "f", Body: &ast.Int{Value: 1}},
			{Kind: ast.DeclDefn, Name: "f", Body: &ast.Int{Value: 2}},
		},
		Solve: &ast.Int{Value: 0},
	}
	_, derr := Link(entry, ModuleSet{})
	require.NotNil(t, derr)
	require.Equal(t, "X07-LNK-0001", derr.Code)
}
