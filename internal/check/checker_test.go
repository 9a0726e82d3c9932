package check

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/types"
	"github.com/x07lang/x07ast/internal/worlds"
)

func call(head string, args ...ast.Expr) *ast.List {
	items := make([]ast.Expr, 0, len(args)+1)
	items = append(items, &ast.Ident{Name: head})
	items = append(items, args...)
	return &ast.List{Items: items}
}

func idt(name string) *ast.Ident { return &ast.Ident{Name: name} }

func TestCheck_ArithmeticPasses(t *testing.T) {
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{},
		Order: nil,
		Solve: call("+", &ast.Int{Value: 1}, &ast.Int{Value: 2}),
	}
	derr := Check(prog, worlds.Pure(), map[string]FnSig{}, map[string]bool{}, nil)
	require.Nil(t, derr)
}

func TestCheck_RejectsCapabilityWithoutWorldFlag(t *testing.T) {
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{},
		Solve: call("fs.read", &ast.Int{Value: 0}),
	}
	derr := Check(prog, worlds.Pure(), map[string]FnSig{}, map[string]bool{}, nil)
	require.NotNil(t, derr)
	require.Equal(t, diag.Unsupported, derr.Kind)
}

func TestCheck_IfBranchesAgree(t *testing.T) {
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{},
		Solve: call("if", &ast.Int{Value: 1}, &ast.Int{Value: 0}, &ast.Int{Value: 0}),
	}
	derr := Check(prog, worlds.Pure(), map[string]FnSig{}, map[string]bool{}, nil)
	require.Nil(t, derr)
}

func TestCheck_RejectsOwnerNotIdentifier(t *testing.T) {
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{},
		Solve: call("bytes.view", &ast.Int{Value: 1}),
	}
	derr := Check(prog, worlds.Pure(), map[string]FnSig{}, map[string]bool{}, nil)
	require.NotNil(t, derr)
}

func TestCheck_RejectsTaskScopeEscape(t *testing.T) {
	mainQ := program.Qualify("demo/main", "spawn")
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{
			mainQ: {
				Kind: ast.DeclDefAsync,
				Name: "spawn",
				Body: &ast.Int{Value: 0},
			},
		},
		Order: []program.QualifiedName{mainQ},
		Solve: call("task.scope_v1",
			call("task.scope.cfg_v1"),
			call("async_let_bytes_v1", idt("handle"), call("spawn"), idt("handle"))),
	}
	sigs := map[string]FnSig{
		"spawn": {Return: types.TypeInfo{Ty: types.I32}, Kind: ast.DeclDefAsync},
	}
	derr := Check(prog, worlds.Pure(), sigs, map[string]bool{}, nil)
	require.NotNil(t, derr)
	require.Equal(t, "X07E_SLOT_ESCAPES_SCOPE", derr.Code)
}

func TestCheck_RejectsUnknownFunctionCall(t *testing.T) {
	prog := &program.Program{
		Decls: map[program.QualifiedName]*ast.Decl{},
		Solve: call("nope", idt("x")),
	}
	derr := Check(prog, worlds.Pure(), map[string]FnSig{}, map[string]bool{}, nil)
	require.NotNil(t, derr)
}
