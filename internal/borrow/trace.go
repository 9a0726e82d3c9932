package borrow

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
)

// ownerProducingHeads are the operations that borrow a fresh view from
// a named owner: each requires (and the type checker already
// enforced) a bare-identifier first argument.
var ownerProducingHeads = map[string]bool{
	"bytes.view": true, "bytes.subview": true, "vec_u8.as_view": true,
	"std.brand.view_v1": true,
}

// provenancePreservingHeads forward their sole view-bearing operand's
// provenance unchanged.
var provenancePreservingHeads = map[string]bool{
	"view.slice": true, "view.subview": true, "try": true,
	"std.brand.erase_view_v1": true, "std.brand.cast_view_v1": true,
}

type tracer struct {
	prog    *program.Program
	anchors map[program.QualifiedName]Anchor
}

// traceExpr walks expr, returning its own provenance (meaningful only
// when the expression is view-typed) and appending every `return`
// sub-expression's provenance to collected, so the caller can fold
// every path a function's result can take.
func (t *tracer) traceExpr(env *provEnv, expr ast.Expr, collected *[]Provenance, ptr ast.Ptr) (Provenance, *diag.Error) {
	switch n := expr.(type) {
	case *ast.Int:
		return ProvRuntime, nil
	case *ast.Ident:
		if p, ok := env.lookup(n.Name); ok {
			return p, nil
		}
		return ProvRuntime, nil
	case *ast.List:
		return t.traceList(env, n, collected)
	default:
		return ProvRuntime, nil
	}
}

func (t *tracer) traceList(env *provEnv, list *ast.List, collected *[]Provenance) (Provenance, *diag.Error) {
	head, ok := list.Head()
	if !ok {
		return ProvRuntime, nil
	}
	args := list.Args()

	switch {
	case head == "let" && len(args) == 3:
		name, ok := args[0].(*ast.Ident)
		if !ok {
			return ProvRuntime, nil
		}
		valProv, derr := t.traceExpr(env, args[1], collected, list.Ptr)
		if derr != nil {
			return Provenance{}, derr
		}
		env.push()
		defer env.pop()
		env.define(name.Name, valProv)
		return t.traceExpr(env, args[2], collected, list.Ptr)

	case head == "begin":
		env.push()
		defer env.pop()
		var last Provenance
		for _, a := range args {
			p, derr := t.traceExpr(env, a, collected, list.Ptr)
			if derr != nil {
				return Provenance{}, derr
			}
			last = p
		}
		return last, nil

	case head == "if" && len(args) == 3:
		if _, derr := t.traceExpr(env, args[0], collected, list.Ptr); derr != nil {
			return Provenance{}, derr
		}
		thenProv, derr := t.traceExpr(env, args[1], collected, list.Ptr)
		if derr != nil {
			return Provenance{}, derr
		}
		elseProv, derr := t.traceExpr(env, args[2], collected, list.Ptr)
		if derr != nil {
			return Provenance{}, derr
		}
		return joinProvenance(thenProv, elseProv, list.Ptr)

	case head == "return" && len(args) == 1:
		argProv, derr := t.traceExpr(env, args[0], collected, list.Ptr)
		if derr != nil {
			return Provenance{}, derr
		}
		*collected = append(*collected, argProv)
		return argProv, nil

	case ownerProducingHeads[head] && len(args) >= 1:
		owner, ok := args[0].(*ast.Ident)
		if !ok {
			return ProvRuntime, nil // the checker rejects this shape before borrow analysis runs
		}
		return LocalOwnedBy(owner.Name), nil

	case provenancePreservingHeads[head] && len(args) >= 1:
		return t.traceExpr(env, args[0], collected, list.Ptr)

	default:
		if anchor, ok := t.anchors[program.QualifiedName(head)]; ok {
			return t.applyAnchor(env, anchor, args, collected, list.Ptr)
		}
		for _, a := range args {
			if _, derr := t.traceExpr(env, a, collected, list.Ptr); derr != nil {
				return Provenance{}, derr
			}
		}
		return ProvRuntime, nil
	}
}

// applyAnchor re-anchors a call to a view-returning function whose
// contract is already known: AnchorParam re-derives the result's
// provenance from whichever argument occupies that parameter
// position at this call site.
func (t *tracer) applyAnchor(env *provEnv, anchor Anchor, args []ast.Expr, collected *[]Provenance, ptr ast.Ptr) (Provenance, *diag.Error) {
	for _, a := range args {
		if _, derr := t.traceExpr(env, a, collected, ptr); derr != nil {
			return Provenance{}, derr
		}
	}
	switch anchor.Kind {
	case AnchorRuntime:
		return ProvRuntime, nil
	case AnchorParam:
		if anchor.ParamIndex >= len(args) {
			return ProvRuntime, nil
		}
		return t.traceExpr(env, args[anchor.ParamIndex], collected, ptr)
	default:
		return ProvRuntime, nil
	}
}

// joinProvenance implements the if-join rule: identical provenances
// join to themselves; two differing LocalOwned branches converge to
// Runtime (the safe common supertype); a Runtime branch joining a
// LocalOwned branch does not converge and is rejected.
func joinProvenance(a, b Provenance, ptr ast.Ptr) (Provenance, *diag.Error) {
	if a.Equal(b) {
		return a, nil
	}
	if a.Kind == LocalOwned && b.Kind == LocalOwned {
		return ProvRuntime, nil
	}
	return Provenance{}, diag.New(diag.Typing, diag.CodeViewJoinMismatch, "borrow",
		"if branches disagree on view provenance and do not converge").WithPtr(diag.Ptr(ptr))
}
