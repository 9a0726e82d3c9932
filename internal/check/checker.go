package check

import (
	"strings"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/types"
	"github.com/x07lang/x07ast/internal/worlds"
)

// FormRule checks one head's call form and returns the expression's
// TypeInfo. Following a per-concern dispatch split (one file per
// operator family: core arithmetic, data operations, pattern/match
// forms) generalised to a single head-keyed table instead of a type
// switch on an AST node kind, since x07AST's surface is uniformly
// List-shaped.
type FormRule func(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error)

// formRules is populated by each rules_*.go file's init().
var formRules = map[string]FormRule{}

func registerForms(rules map[string]FormRule) {
	for head, rule := range rules {
		formRules[head] = rule
	}
}

// Checker is stateless; all per-declaration state lives in Context
// and Env, so one Checker value serves an entire program.
type Checker struct{}

func New() *Checker { return &Checker{} }

// Check type-and-effect-checks every declaration and the entry solve
// expression of a monomorphic program, stopping at the first
// diagnostic (consistent with the linker and monomorphiser stages).
func Check(prog *program.Program, world worlds.World, sigs map[string]FnSig, externs map[string]bool, profiles ProfileResolver) *diag.Error {
	c := New()
	for _, q := range prog.Order {
		d := prog.Decls[q]
		if d.Body == nil {
			continue // export/extern markers carry no body to check
		}
		sig := sigs[string(q)]
		ctx := &Context{
			World:         world,
			Sigs:          sigs,
			Externs:       externs,
			Profiles:      profiles,
			AllowAsyncOps: d.Kind == ast.DeclDefAsync,
			ReturnType:    sig.Return,
		}
		if _, derr := c.Infer(NewEnv(), ctx, d.Body); derr != nil {
			return derr
		}
	}
	ctx := &Context{World: world, Sigs: sigs, Externs: externs, Profiles: profiles, AllowAsyncOps: true}
	_, derr := c.Infer(NewEnv(), ctx, prog.Solve)
	return derr
}

// Infer returns the TypeInfo of expr under env and ctx, the single
// entry point every form rule recurses back through.
func (c *Checker) Infer(env *Env, ctx *Context, expr ast.Expr) (types.TypeInfo, *diag.Error) {
	switch n := expr.(type) {
	case *ast.Int:
		return types.TypeInfo{Ty: types.I32}, nil
	case *ast.Ident:
		if ti, ok := env.Lookup(n.Name); ok {
			return ti, nil
		}
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"undefined identifier "+n.Name).WithPtr(diag.Ptr(n.Ptr))
	case *ast.List:
		return c.inferList(env, ctx, n)
	default:
		return types.TypeInfo{}, diag.New(diag.Internal, diag.CodeInternalInvariant, "check", "unknown expression node")
	}
}

func (c *Checker) inferList(env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	head, ok := list.Head()
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"call form must begin with a bare identifier head").WithPtr(diag.Ptr(list.Ptr))
	}
	if derr := checkGate(ctx, head, list.Ptr); derr != nil {
		return types.TypeInfo{}, derr
	}
	if rule, ok := formRules[head]; ok {
		return rule(c, env, ctx, list)
	}
	if strings.HasPrefix(head, "async_let_") && strings.HasSuffix(head, "_v1") {
		return ruleAsyncLet(c, env, ctx, list)
	}
	if op, ok := arithmeticOps[head]; ok {
		return c.inferArithmetic(env, ctx, list, op)
	}
	return c.inferCall(env, ctx, list, head)
}

// inferCall checks a call to a user-defined function against its
// recorded signature: arity, argument types, and brand compatibility.
func (c *Checker) inferCall(env *Env, ctx *Context, list *ast.List, head string) (types.TypeInfo, *diag.Error) {
	sig, ok := ctx.Sigs[head]
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"call to unknown function "+head).WithPtr(diag.Ptr(list.Ptr))
	}
	args := list.Args()
	if len(args) != len(sig.Params) {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMonoArityMismatch, "check",
			head+" called with the wrong number of arguments").WithPtr(diag.Ptr(list.Ptr))
	}
	for i, a := range args {
		ti, derr := c.Infer(env, ctx, a)
		if derr != nil {
			return types.TypeInfo{}, derr
		}
		want := sig.Params[i]
		if ti.Ty != want.Ty {
			return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
				head+": argument type mismatch").WithPtr(diag.Ptr(list.Ptr))
		}
		if !types.FitsParam(ti.Brand, want.Brand) {
			return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
				head+": argument brand does not fit parameter").WithPtr(diag.Ptr(list.Ptr))
		}
	}
	return sig.Return, nil
}
