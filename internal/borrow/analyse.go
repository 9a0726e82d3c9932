// Package borrow traces, after type checking, where every bytes_view
// a function hands out came from, so a view-returning function can be
// proven to never outlive the local it was borrowed from. Analyse
// resolves each view-returning function's single-parameter anchor to
// a stable assignment across the call graph by iterating a bounded
// fixed point, the same way a mutually-recursive dependency graph is
// resolved to a stable assignment.
package borrow

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/types"
)

// maxFixedPointRounds bounds the iteration over the view-returning
// call graph: the loop stops at the first round in which no decl's
// anchor changes, or after this many rounds, whichever comes first.
const maxFixedPointRounds = 256

func isViewReturn(returnType string) bool {
	return types.IsViewLike(types.Type(returnType))
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// Analyse runs the borrow pass over a fully monomorphic program,
// returning every view-returning declaration's resolved Anchor. A nil
// error with a non-AnchorReject result for every view-returning decl
// means the program's views are all proven bounded by a caller's own
// frame.
func Analyse(prog *program.Program) (map[program.QualifiedName]Anchor, *diag.Error) {
	viewDecls := make([]program.QualifiedName, 0)
	for _, qn := range prog.Order {
		d := prog.Decls[qn]
		if d == nil || (d.Kind != ast.DeclDefn && d.Kind != ast.DeclDefAsync) {
			continue
		}
		if isViewReturn(d.ReturnType) {
			viewDecls = append(viewDecls, qn)
		}
	}

	anchors := make(map[program.QualifiedName]Anchor, len(viewDecls))
	for _, qn := range viewDecls {
		anchors[qn] = Anchor{Kind: AnchorUnknown}
	}

	t := &tracer{prog: prog, anchors: anchors}

	for round := 0; round < maxFixedPointRounds; round++ {
		changed := false
		for _, qn := range viewDecls {
			d := prog.Decls[qn]
			resolved, derr := t.resolveDecl(d)
			if derr != nil {
				return nil, derr
			}
			if resolved.Kind != anchors[qn].Kind || resolved.ParamIndex != anchors[qn].ParamIndex {
				anchors[qn] = resolved
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, qn := range viewDecls {
		if anchors[qn].Kind == AnchorReject || anchors[qn].Kind == AnchorUnknown {
			d := prog.Decls[qn]
			return nil, diag.New(diag.Typing, diag.CodeViewReturnAmbiguous, "borrow",
				"function \""+d.Name+"\" returns a view whose provenance is not a single stable parameter").
				WithPtr(diag.Ptr(d.Ptr))
		}
	}

	// Final validation pass: every declaration (not only view-returning
	// ones) must not return a view anchored to a non-outliving local.
	for _, qn := range prog.Order {
		d := prog.Decls[qn]
		if d == nil || d.Body == nil {
			continue
		}
		if _, derr := t.resolveDecl(d); derr != nil {
			return nil, derr
		}
	}

	return anchors, nil
}

// resolveDecl traces d's body to a single Anchor, folding every return
// path's provenance together.
func (t *tracer) resolveDecl(d *ast.Decl) (Anchor, *diag.Error) {
	env := newProvEnv()
	for _, p := range d.Params {
		if types.IsViewLike(types.Type(p.TypeRef)) {
			env.define(p.Name, LocalOwnedBy(p.Name))
		}
	}

	var collected []Provenance
	tail, derr := t.traceExpr(env, d.Body, &collected, d.Ptr)
	if derr != nil {
		return Anchor{}, derr
	}
	collected = append(collected, tail)

	params := paramNames(d.Params)
	result := toAnchor(collected[0], params)
	for _, p := range collected[1:] {
		candidate := toAnchor(p, params)
		if candidate.Kind != result.Kind || candidate.ParamIndex != result.ParamIndex {
			if !isViewReturn(d.ReturnType) {
				// a non-view-returning function's mismatched interior
				// provenances are harmless; only the declared result
				// type's borrow contract matters.
				continue
			}
			return Anchor{Kind: AnchorReject}, nil
		}
	}
	if !isViewReturn(d.ReturnType) {
		return Anchor{Kind: AnchorRuntime}, nil
	}
	return result, nil
}
