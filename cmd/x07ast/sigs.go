package main

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/check"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/types"
)

// buildSigs derives the checker's call-contract table from a
// monomorphic program: every declaration's parameter/return types
// (TypeRef strings lifted verbatim into types.Type, since the closed
// primitive universe's wire names and Go constants are identical
// strings) keyed both by its qualified name (what Check's per-decl
// loop looks up for its own ReturnType context) and by its bare
// symbol (what same-module call sites use as a head, left unqualified
// by the monomorphiser for non-generic calls).
func buildSigs(prog *program.Program) map[string]check.FnSig {
	sigs := make(map[string]check.FnSig, len(prog.Decls)*2)
	for q, d := range prog.Decls {
		sig := check.FnSig{
			Params: paramTypes(d.Params),
			Return: types.TypeInfo{Ty: types.Type(d.ReturnType)},
			Kind:   d.Kind,
		}
		sigs[string(q)] = sig
		sigs[d.Name] = sig
	}
	return sigs
}

func paramTypes(params []ast.Param) []types.TypeInfo {
	out := make([]types.TypeInfo, len(params))
	for i, p := range params {
		out[i] = types.TypeInfo{Ty: types.Type(p.TypeRef)}
	}
	return out
}

// buildExterns collects every extern declaration's bare name, the
// externs set check.Check gates world-capability calls against.
func buildExterns(prog *program.Program) map[string]bool {
	out := make(map[string]bool)
	for _, d := range prog.Decls {
		if d.Kind == ast.DeclExtern {
			out[d.Name] = true
		}
	}
	return out
}
