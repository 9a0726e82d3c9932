package mono

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/types"
)

// intrinsicHeads is the set of ty.* heads the monomorphiser lowers.
// Following a family-split convention (one operator family per
// builtin group), each case below is the lowering rule for one
// intrinsic family, selected by the monomorphic type bound to the
// instantiation.
var intrinsicHeads = map[string]bool{
	"ty.size": true, "ty.size_bytes": true, "ty.read_le_at": true,
	"ty.write_le_at": true, "ty.push_le": true, "ty.eq": true,
	"ty.lt": true, "ty.cmp": true, "ty.hash32": true, "ty.clone": true,
	"ty.drop": true,
}

// IsIntrinsicHead reports whether head is one of the ty.* family.
func IsIntrinsicHead(head string) bool { return intrinsicHeads[head] }

// lowerIntrinsic rewrites a single `(ty.<op> <Type> args...)` call,
// where <Type> has already been substituted to a concrete primitive
// type name, into the concrete primitive operation for that (op,
// type) pair. tmp is a fresh-name generator used for the bytes
// family, which needs let-bound temporaries for each operand (e.g.
// ty.eq on bytes lowers to a bytes.eq_range call with a
// let-bound temporary per operand).
func lowerIntrinsic(op string, ty types.Type, args []ast.Expr, ptr ast.Ptr, tmp func() string) ast.Expr {
	call := func(head string, rest ...ast.Expr) ast.Expr {
		items := make([]ast.Expr, 0, len(rest)+1)
		items = append(items, &ast.Ident{Name: head, Ptr: ptr})
		items = append(items, rest...)
		return &ast.List{Items: items, Ptr: ptr}
	}

	switch {
	case ty == types.I32:
		switch op {
		case "ty.eq":
			return call("=", args...)
		case "ty.lt":
			return call("<", args...)
		case "ty.cmp":
			return call("__internal.i32.cmp_v1", args...)
		case "ty.hash32":
			return call("__internal.i32.hash32_v1", args...)
		case "ty.size", "ty.size_bytes":
			return &ast.Int{Value: 4, Ptr: ptr}
		case "ty.clone":
			return args[0]
		case "ty.drop":
			return &ast.Int{Value: 0, Ptr: ptr}
		case "ty.read_le_at":
			return call("__internal.i32.read_le_at_v1", args...)
		case "ty.write_le_at":
			return call("__internal.i32.write_le_at_v1", args...)
		case "ty.push_le":
			return call("__internal.i32.push_le_v1", args...)
		}
	case ty == types.Bytes || ty == types.View:
		// Needs let-bound temporaries for each operand so the
		// comparison sequence evaluates each argument exactly once.
		letNames := make([]string, len(args))
		body := func(names []string) ast.Expr {
			rewritten := make([]ast.Expr, len(names))
			for i, n := range names {
				rewritten[i] = &ast.Ident{Name: n, Ptr: ptr}
			}
			switch op {
			case "ty.eq":
				return call("bytes.eq_range", rewritten...)
			case "ty.lt":
				return call("bytes.cmp_range", append(rewritten, &ast.Int{Value: -1, Ptr: ptr})...)
			case "ty.cmp":
				return call("bytes.cmp_range", rewritten...)
			case "ty.hash32":
				return call("bytes.hash32_range", rewritten...)
			case "ty.clone":
				return call("bytes.clone", rewritten...)
			case "ty.drop":
				return call("__internal.bytes.drop_v1", rewritten...)
			default:
				return call(op, rewritten...)
			}
		}
		expr := body(letNamesOrArgs(letNames, args, tmp))
		for i := len(args) - 1; i >= 0; i-- {
			expr = &ast.List{Items: []ast.Expr{
				&ast.Ident{Name: "let", Ptr: ptr},
				&ast.Ident{Name: letNames[i], Ptr: ptr},
				args[i],
				expr,
			}, Ptr: ptr}
		}
		return expr
	}
	// Unknown (type, op) pair: leave a direct call to a named internal
	// primitive that no declaration defines. It is not a ty.* head, so
	// the post-pass does not flag it; the type checker rejects it as an
	// unknown function instead of the program silently miscompiling.
	return call("__internal.unsupported_ty_intrinsic", args...)
}

func letNamesOrArgs(names []string, args []ast.Expr, tmp func() string) []string {
	for i := range names {
		names[i] = tmp()
		_ = args
	}
	return names
}
