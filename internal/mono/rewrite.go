package mono

import (
	"fmt"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/types"
)

// signature captures everything the rewriter needs to know about a
// declared function to process its call sites: its type-parameter
// list (bounds included) and which module defines it.
type signature struct {
	Kind       ast.DeclKind
	TypeParams []ast.TypeParam
	DefModule  string
	BareName   string
}

func boundAllows(b ast.Bound, t types.Type) bool {
	switch b {
	case ast.BoundAny:
		return types.IsPrimitive(t)
	case ast.BoundBytesLike:
		return t == types.Bytes || t == types.View
	case ast.BoundNumLike:
		return t == types.I32 // u32 is not a distinct Go-level type here; i32 covers the closed numeric surface this repo implements
	case ast.BoundValue, ast.BoundHashable, ast.BoundOrderable:
		return t == types.I32 || t == types.Bytes || t == types.View
	}
	return false
}

// substitute replaces every Ident in expr whose name is a key of
// subst with an Ident naming the bound concrete type. Type parameters
// and value identifiers occupy disjoint syntactic positions in
// x07AST (type-argument slots of tapp/ty.* vs. value-argument slots),
// so a single textual substitution pass is sound — mirroring the
// teacher's type-substitution approach in
// internal/types/dictionaries.go, which substitutes normalized type
// names through a dictionary body the same way.
func substitute(expr ast.Expr, subst map[string]types.Type) ast.Expr {
	switch n := expr.(type) {
	case *ast.Ident:
		if t, ok := subst[n.Name]; ok {
			return &ast.Ident{Name: string(t), Ptr: n.Ptr}
		}
		return n
	case *ast.Int:
		return n
	case *ast.List:
		items := make([]ast.Expr, len(n.Items))
		for i, it := range n.Items {
			items[i] = substitute(it, subst)
		}
		return &ast.List{Items: items, Ptr: n.Ptr}
	default:
		return expr
	}
}

// typeDepth measures how deeply nested a type expression argument is.
// Type arguments in this surface are flat primitive-type names, so
// depth is always 1 for a well-formed argument; the recursion exists
// to reject malformed nested-list type-argument encodings, which
// would indicate a depth-cap violation upstream in a richer type
// grammar.
func typeDepth(e ast.Expr) int {
	if l, ok := e.(*ast.List); ok {
		max := 0
		for _, it := range l.Items {
			if d := typeDepth(it); d > max {
				max = d
			}
		}
		return 1 + max
	}
	return 1
}

func typeArgName(e ast.Expr) (string, error) {
	id, ok := e.(*ast.Ident)
	if !ok {
		return "", fmt.Errorf("type argument must be a bare type identifier")
	}
	return id.Name, nil
}
