package mono

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/program"
)

func tapp(callee string, typeArg string, valueArg ast.Expr) *ast.List {
	return &ast.List{Items: []ast.Expr{
		&ast.Ident{Name: "tapp"},
		&ast.Ident{Name: callee},
		&ast.Ident{Name: typeArg},
		valueArg,
	}}
}

func TestRun_SpecializesEachDistinctTypeArgOnce(t *testing.T) {
	idQ := program.Qualify("demo/main", "id")
	prog := &program.GenericProgram{
		Decls: map[program.QualifiedName]*ast.Decl{
			idQ: {
				Kind:       ast.DeclDefn,
				Name:       "id",
				TypeParams: []ast.TypeParam{{Name: "A", Bound: ast.BoundAny}},
				Body:       &ast.Ident{Name: "A"},
			},
		},
		Order: []program.QualifiedName{idQ},
		Solve: &ast.List{Items: []ast.Expr{
			&ast.Ident{Name: "pair"},
			tapp("id", "i32", &ast.Int{Value: 5}),
			tapp("id", "bytes", &ast.Int{Value: 7}),
		}},
		SolveModule: "demo/main",
		Exports:     program.ExportTable{},
	}

	out, monoMap, derr := Run(prog, Options{})
	require.Nil(t, derr)
	require.Len(t, monoMap.Instances, 2)
	require.Equal(t, idQ, monoMap.Instances[0].Generic)
	require.Equal(t, idQ, monoMap.Instances[1].Generic)
	require.NotEqual(t, monoMap.Instances[0].SpecializedName, monoMap.Instances[1].SpecializedName)

	require.Len(t, out.Decls, 2)
	for _, inst := range monoMap.Instances {
		require.Contains(t, out.Decls, inst.SpecializedName)
	}

	solveList, ok := out.Solve.(*ast.List)
	require.True(t, ok)
	require.Len(t, solveList.Items, 3)
	for _, callSite := range solveList.Items[1:] {
		callList, ok := callSite.(*ast.List)
		require.True(t, ok)
		head, ok := callList.Head()
		require.True(t, ok)
		require.NotEqual(t, "tapp", head)
	}
}

func TestRun_SameTypeArgReusesOneSpecialization(t *testing.T) {
	idQ := program.Qualify("demo/main", "id")
	prog := &program.GenericProgram{
		Decls: map[program.QualifiedName]*ast.Decl{
			idQ: {
				Kind:       ast.DeclDefn,
				Name:       "id",
				TypeParams: []ast.TypeParam{{Name: "A", Bound: ast.BoundAny}},
				Body:       &ast.Ident{Name: "A"},
			},
		},
		Order: []program.QualifiedName{idQ},
		Solve: &ast.List{Items: []ast.Expr{
			&ast.Ident{Name: "pair"},
			tapp("id", "i32", &ast.Int{Value: 1}),
			tapp("id", "i32", &ast.Int{Value: 2}),
		}},
		SolveModule: "demo/main",
		Exports:     program.ExportTable{},
	}

	_, monoMap, derr := Run(prog, Options{})
	require.Nil(t, derr)
	require.Len(t, monoMap.Instances, 1)
}

func TestRun_RejectsBoundViolation(t *testing.T) {
	idQ := program.Qualify("demo/main", "id")
	prog := &program.GenericProgram{
		Decls: map[program.QualifiedName]*ast.Decl{
			idQ: {
				Kind:       ast.DeclDefn,
				Name:       "id",
				TypeParams: []ast.TypeParam{{Name: "A", Bound: ast.BoundBytesLike}},
				Body:       &ast.Ident{Name: "A"},
			},
		},
		Order:       []program.QualifiedName{idQ},
		Solve:       tapp("id", "i32", &ast.Int{Value: 1}),
		SolveModule: "demo/main",
		Exports:     program.ExportTable{},
	}

	_, _, derr := Run(prog, Options{})
	require.NotNil(t, derr)
	require.Equal(t, "X07-TY-0102", derr.Code)
}
