package mono

import (
	"fmt"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/types"
)

// Options configures the monomorphiser's budgets.
type Options struct {
	SpecializationCap int
	TypeDepthCap      int
}

type rewriter struct {
	signatures map[string]*signature
	exports    program.ExportTable
	wl         *Worklist
	opts       Options
	tmpCounter int
}

// Run splits generic from non-generic declarations, rewrites every
// tapp call site and ty.* intrinsic reachable from a non-generic body
// or the entry solve, and drains the worklist of specialisations it
// schedules until fixpoint (bounded by the specialisation/type-depth
// caps).
func Run(prog *program.GenericProgram, opts Options) (*program.Program, *program.MonoMap, *diag.Error) {
	r := &rewriter{
		signatures: buildSignatures(prog),
		exports:    prog.Exports,
		wl:         NewWorklist(opts.SpecializationCap, opts.TypeDepthCap),
		opts:       opts,
	}

	outDecls := make(map[program.QualifiedName]*ast.Decl, len(prog.Decls))
	var outOrder []program.QualifiedName

	for _, q := range prog.Order {
		d := prog.Decls[q]
		if len(d.TypeParams) > 0 {
			continue // generic: only reachable through instantiation
		}
		moduleID := moduleOf(string(q))
		newBody, derr := r.rewriteExpr(d.Body, moduleID)
		if derr != nil {
			return nil, nil, derr
		}
		nd := *d
		nd.Body = newBody
		outDecls[q] = &nd
		outOrder = append(outOrder, q)
	}

	newSolve, derr := r.rewriteExpr(prog.Solve, prog.SolveModule)
	if derr != nil {
		return nil, nil, derr
	}

	for {
		inst := r.wl.Next()
		if inst == nil {
			break
		}
		gsig, ok := r.signatures[inst.Generic]
		if !ok {
			return nil, nil, diag.New(diag.Internal, diag.CodeInternalInvariant, "mono",
				"scheduled specialisation for unknown generic "+inst.Generic)
		}
		subst := make(map[string]types.Type, len(gsig.TypeParams))
		for i, tp := range gsig.TypeParams {
			subst[tp.Name] = types.Type(inst.TypeArgs[i])
		}
		genericDecl := prog.Decls[program.QualifiedName(inst.Generic)]
		cloned := substitute(genericDecl.Body, subst)
		rewritten, derr := r.rewriteExpr(cloned, inst.DefModule)
		if derr != nil {
			return nil, nil, derr
		}
		inst.Body = rewritten

		specQ := program.Qualify(inst.DefModule, inst.SpecializedName)
		outDecls[specQ] = &ast.Decl{
			Kind: inst.Kind,
			Name: inst.SpecializedName,
			Body: rewritten,
			Ptr:  genericDecl.Ptr,
		}
		outOrder = append(outOrder, specQ)
	}

	if derr := assertNoGenericSurface(newSolve); derr != nil {
		return nil, nil, derr
	}
	for _, q := range outOrder {
		if derr := assertNoGenericSurface(outDecls[q].Body); derr != nil {
			return nil, nil, derr
		}
	}

	monoMap := r.wl.ToMonoMap()
	return &program.Program{Decls: outDecls, Order: outOrder, Solve: newSolve}, &monoMap, nil
}

func buildSignatures(prog *program.GenericProgram) map[string]*signature {
	out := make(map[string]*signature, len(prog.Decls))
	for q, d := range prog.Decls {
		out[string(q)] = &signature{
			Kind:       d.Kind,
			TypeParams: d.TypeParams,
			DefModule:  moduleOf(string(q)),
			BareName:   d.Name,
		}
	}
	return out
}

func moduleOf(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[:i]
		}
	}
	return qualified
}

func (r *rewriter) nextTmp() string {
	r.tmpCounter++
	return fmt.Sprintf("__mono_tmp_%d", r.tmpCounter)
}

// rewriteExpr recursively rewrites expr (post-order): children first,
// then tapp call-site rewriting or ty.* intrinsic lowering at this
// node.
func (r *rewriter) rewriteExpr(expr ast.Expr, currentModule string) (ast.Expr, *diag.Error) {
	if expr == nil {
		return nil, nil
	}
	list, ok := expr.(*ast.List)
	if !ok {
		return expr, nil
	}
	head, hasHead := list.Head()

	if hasHead && head == "tapp" {
		return r.rewriteTapp(list, currentModule)
	}

	rewrittenItems := make([]ast.Expr, len(list.Items))
	for i, it := range list.Items {
		rw, derr := r.rewriteExpr(it, currentModule)
		if derr != nil {
			return nil, derr
		}
		rewrittenItems[i] = rw
	}
	rewritten := &ast.List{Items: rewrittenItems, Ptr: list.Ptr}

	if hasHead && IsIntrinsicHead(head) {
		return r.lowerIntrinsicCall(rewritten)
	}
	return rewritten, nil
}

func (r *rewriter) lowerIntrinsicCall(list *ast.List) (ast.Expr, *diag.Error) {
	if len(list.Items) < 2 {
		return nil, diag.New(diag.Parse, diag.CodeBadListArity, "mono",
			"ty.* intrinsic requires a type argument").WithPtr(diag.Ptr(list.Ptr))
	}
	head, _ := list.Head()
	tyName, err := typeArgName(list.Items[1])
	if err != nil {
		return nil, diag.New(diag.Typing, diag.CodeMonoNonConcreteArgs, "mono", err.Error()).WithPtr(diag.Ptr(list.Ptr))
	}
	ty := types.Type(tyName)
	if !types.IsPrimitive(ty) {
		return nil, diag.New(diag.Typing, diag.CodeMonoNonConcreteArgs, "mono",
			fmt.Sprintf("ty.* intrinsic resolved to a non-concrete type %q", tyName)).WithPtr(diag.Ptr(list.Ptr))
	}
	args := list.Items[2:]
	return lowerIntrinsic(head, ty, args, list.Ptr, r.nextTmp), nil
}

func (r *rewriter) rewriteTapp(list *ast.List, currentModule string) (ast.Expr, *diag.Error) {
	if len(list.Items) < 2 {
		return nil, diag.New(diag.Parse, diag.CodeBadListArity, "mono", "tapp requires a callee").WithPtr(diag.Ptr(list.Ptr))
	}
	calleeIdent, ok := list.Items[1].(*ast.Ident)
	if !ok {
		return nil, diag.New(diag.Parse, diag.CodeMalformedDocument, "mono", "tapp callee must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	calleeName := resolveName(calleeIdent.Name, currentModule, r.signatures)
	sig, ok := r.signatures[calleeName]
	if !ok {
		return nil, diag.New(diag.Typing, diag.CodeMonoArityMismatch, "mono",
			"tapp references unknown callee "+calleeIdent.Name).WithPtr(diag.Ptr(list.Ptr))
	}

	rest := list.Items[2:]
	var typeArgExprs []ast.Expr
	var valueArgs []ast.Expr
	if len(rest) > 0 {
		if grouped, ok := rest[0].(*ast.List); ok {
			if h, ok2 := grouped.Head(); ok2 && h == "tys" {
				typeArgExprs = grouped.Args()
				valueArgs = rest[1:]
			}
		}
	}
	if typeArgExprs == nil {
		k := len(sig.TypeParams)
		if k > len(rest) {
			return nil, diag.New(diag.Typing, diag.CodeMonoArityMismatch, "mono",
				fmt.Sprintf("tapp to %q expects %d type arguments", calleeName, k)).WithPtr(diag.Ptr(list.Ptr))
		}
		typeArgExprs = rest[:k]
		valueArgs = rest[k:]
	}

	if len(typeArgExprs) != len(sig.TypeParams) {
		return nil, diag.New(diag.Typing, diag.CodeMonoArityMismatch, "mono",
			fmt.Sprintf("tapp to %q: expected %d type arguments, got %d", calleeName, len(sig.TypeParams), len(typeArgExprs))).
			WithPtr(diag.Ptr(list.Ptr))
	}

	typeArgNames := make([]string, len(typeArgExprs))
	for i, e := range typeArgExprs {
		if typeDepth(e) > r.wl.DepthCap() {
			return nil, diag.New(diag.Budget, diag.CodeBudgetTypeDepthCap, "mono",
				"type expression depth cap exceeded").WithLimit("type_depth", r.wl.DepthCap(), typeDepth(e))
		}
		name, err := typeArgName(e)
		if err != nil {
			return nil, diag.New(diag.Typing, diag.CodeMonoNonConcreteArgs, "mono", err.Error()).WithPtr(diag.Ptr(list.Ptr))
		}
		ty := types.Type(name)
		if !types.IsPrimitive(ty) {
			return nil, diag.New(diag.Typing, diag.CodeMonoNonConcreteArgs, "mono",
				fmt.Sprintf("type argument %q is not concrete", name)).WithPtr(diag.Ptr(list.Ptr))
		}
		if !boundAllows(sig.TypeParams[i].Bound, ty) {
			return nil, diag.New(diag.Typing, diag.CodeMonoBoundViolation, "mono",
				fmt.Sprintf("type argument %q violates bound %q of parameter %q", name, sig.TypeParams[i].Bound, sig.TypeParams[i].Name)).
				WithPtr(diag.Ptr(list.Ptr))
		}
		typeArgNames[i] = name
	}

	if sig.DefModule != currentModule && !r.exports.IsExported(sig.DefModule, sig.BareName) {
		return nil, diag.New(diag.Typing, diag.CodeMonoNotExported, "mono",
			fmt.Sprintf("tapp targets non-exported cross-module symbol %q", calleeName)).WithPtr(diag.Ptr(list.Ptr))
	}

	canonArgs, err := CanonicalTypeArgs(typeArgNames)
	if err != nil {
		return nil, diag.New(diag.Internal, diag.CodeInternalInvariant, "mono", err.Error())
	}
	key := InstanceKey{Generic: calleeName, CanonicalArgs: canonArgs}
	inst, derr := r.wl.GetOrSchedule(key, calleeName, sig.DefModule, sig.Kind, typeArgNames, list.Ptr)
	if derr != nil {
		return nil, derr
	}

	rewrittenValueArgs := make([]ast.Expr, len(valueArgs))
	for i, a := range valueArgs {
		rw, derr := r.rewriteExpr(a, currentModule)
		if derr != nil {
			return nil, derr
		}
		rewrittenValueArgs[i] = rw
	}

	items := make([]ast.Expr, 0, len(rewrittenValueArgs)+1)
	items = append(items, &ast.Ident{Name: string(program.Qualify(sig.DefModule, inst.SpecializedName)), Ptr: list.Ptr})
	items = append(items, rewrittenValueArgs...)
	return &ast.List{Items: items, Ptr: list.Ptr}, nil
}

// resolveName qualifies a possibly-bare callee name against the
// current module, preferring an exact signature match (already
// qualified or a builtin-like dotted reference) before assuming it is
// a same-module bare symbol.
func resolveName(name, currentModule string, signatures map[string]*signature) string {
	if _, ok := signatures[name]; ok {
		return name
	}
	qualified := currentModule + "." + name
	if _, ok := signatures[qualified]; ok {
		return qualified
	}
	return name
}

func assertNoGenericSurface(expr ast.Expr) *diag.Error {
	if expr == nil {
		return nil
	}
	list, ok := expr.(*ast.List)
	if !ok {
		return nil
	}
	if head, ok := list.Head(); ok {
		if head == "tapp" {
			return diag.New(diag.Internal, diag.CodeMonoTapeLeftover, "mono",
				"post-pass found a remaining tapp head").WithPtr(diag.Ptr(list.Ptr))
		}
		if IsIntrinsicHead(head) {
			return diag.New(diag.Internal, diag.CodeMonoTapeLeftover, "mono",
				"post-pass found a remaining ty.* head: "+head).WithPtr(diag.Ptr(list.Ptr))
		}
	}
	for _, it := range list.Items {
		if derr := assertNoGenericSurface(it); derr != nil {
			return derr
		}
	}
	return nil
}
