package borrow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/program"
)

func prm(name, typeRef string) ast.Param { return ast.Param{Name: name, TypeRef: typeRef} }

func list(head string, args ...ast.Expr) *ast.List {
	items := make([]ast.Expr, 0, len(args)+1)
	items = append(items, &ast.Ident{Name: head})
	items = append(items, args...)
	return &ast.List{Items: items}
}

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func progOf(decls map[program.QualifiedName]*ast.Decl, order []program.QualifiedName) *program.Program {
	return &program.Program{Decls: decls, Order: order}
}

func TestAnalyse_SingleParamAnchorResolves(t *testing.T) {
	qn := program.Qualify("demo/main", "slice_of")
	d := &ast.Decl{
		Kind:       ast.DeclDefn,
		Name:       "slice_of",
		Params:     []ast.Param{prm("b", "bytes")},
		ReturnType: "bytes_view",
		Body:       list("bytes.view", ident("b")),
	}
	prog := progOf(map[program.QualifiedName]*ast.Decl{qn: d}, []program.QualifiedName{qn})

	anchors, derr := Analyse(prog)
	require.Nil(t, derr)
	require.Equal(t, AnchorParam, anchors[qn].Kind)
	require.Equal(t, 0, anchors[qn].ParamIndex)
}

func TestAnalyse_IfJoinOfMatchingOwnerConverges(t *testing.T) {
	qn := program.Qualify("demo/main", "pick")
	d := &ast.Decl{
		Kind:       ast.DeclDefn,
		Name:       "pick",
		Params:     []ast.Param{prm("cond", "i32"), prm("a", "bytes")},
		ReturnType: "bytes_view",
		Body: list("if", ident("cond"),
			list("bytes.view", ident("a")),
			list("bytes.view", ident("a"))),
	}
	prog := progOf(map[program.QualifiedName]*ast.Decl{qn: d}, []program.QualifiedName{qn})

	anchors, derr := Analyse(prog)
	require.Nil(t, derr)
	require.Equal(t, AnchorParam, anchors[qn].Kind)
	require.Equal(t, 1, anchors[qn].ParamIndex)
}

func TestAnalyse_IfJoinOfRuntimeAndLocalOwnedRejected(t *testing.T) {
	qn := program.Qualify("demo/main", "maybe_view")
	d := &ast.Decl{
		Kind:       ast.DeclDefn,
		Name:       "maybe_view",
		Params:     []ast.Param{prm("cond", "i32"), prm("a", "bytes")},
		ReturnType: "bytes_view",
		Body: list("if", ident("cond"),
			list("bytes.view", ident("a")),
			list("bytes.make")),
	}
	prog := progOf(map[program.QualifiedName]*ast.Decl{qn: d}, []program.QualifiedName{qn})

	_, derr := Analyse(prog)
	require.NotNil(t, derr)
	require.Equal(t, "X07E_VIEW_JOIN_MISMATCH", derr.Code)
}

func TestAnalyse_ReturnOfNonParameterLocalRejected(t *testing.T) {
	qn := program.Qualify("demo/main", "bad_view")
	d := &ast.Decl{
		Kind:       ast.DeclDefn,
		Name:       "bad_view",
		Params:     []ast.Param{prm("a", "bytes")},
		ReturnType: "bytes_view",
		Body: list("let", ident("tmp"), list("bytes.make"),
			list("bytes.view", ident("tmp"))),
	}
	prog := progOf(map[program.QualifiedName]*ast.Decl{qn: d}, []program.QualifiedName{qn})

	_, derr := Analyse(prog)
	require.NotNil(t, derr)
	require.Equal(t, "X07E_VIEW_RETURN_AMBIGUOUS", derr.Code)
}
