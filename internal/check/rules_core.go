package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/types"
)

// arithmeticOps is the closed set of two-operand i32 heads; every one
// has the identical contract, so unlike the data-operation table
// these don't need individual rule functions.
var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<u": true, ">>u": true,
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"<u": true, ">=u": true, ">u": true, "<=u": true,
	"&&": true, "||": true,
}

func (c *Checker) inferArithmetic(env *Env, ctx *Context, list *ast.List, _ bool) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"arithmetic/comparison operators take exactly two operands").WithPtr(diag.Ptr(list.Ptr))
	}
	for _, a := range args {
		ti, derr := c.Infer(env, ctx, a)
		if derr != nil {
			return types.TypeInfo{}, derr
		}
		if ti.Ty != types.I32 {
			return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
				"operand of arithmetic/comparison operator must be i32").WithPtr(diag.Ptr(list.Ptr))
		}
	}
	return types.TypeInfo{Ty: types.I32}, nil
}

func init() {
	registerForms(map[string]FormRule{
		"begin": ruleBegin,
		"let":   ruleLet,
		"set":   ruleSet,
		"set0":  ruleSet0,
		"if":     ruleIf,
		"for":    ruleFor,
		"return": ruleReturn,
		"unsafe": ruleUnsafe,
	})
}

func ruleUnsafe(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"unsafe takes exactly one body expression").WithPtr(diag.Ptr(list.Ptr))
	}
	return c.Infer(env, ctx.enterUnsafe(), args[0])
}

func ruleBegin(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) == 0 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"begin requires at least one statement").WithPtr(diag.Ptr(list.Ptr))
	}
	env.Push()
	defer env.Pop()
	var last types.TypeInfo
	for _, a := range args {
		ti, derr := c.Infer(env, ctx, a)
		if derr != nil {
			return types.TypeInfo{}, derr
		}
		last = ti
	}
	return last, nil
}

func ruleLet(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 3 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"let takes (name value body)").WithPtr(diag.Ptr(list.Ptr))
	}
	name, ok := args[0].(*ast.Ident)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"let's first argument must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	valTi, derr := c.Infer(env, ctx, args[1])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	env.Push()
	defer env.Pop()
	env.Define(name.Name, valTi)
	return c.Infer(env, ctx, args[2])
}

func ruleSet(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"set takes (name value)").WithPtr(diag.Ptr(list.Ptr))
	}
	name, ok := args[0].(*ast.Ident)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"set's first argument must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	existing, ok := env.Lookup(name.Name)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"set references undefined name "+name.Name).WithPtr(diag.Ptr(list.Ptr))
	}
	valTi, derr := c.Infer(env, ctx, args[1])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if valTi.Ty != existing.Ty {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"set's value is not compatible with "+name.Name+"'s existing type").WithPtr(diag.Ptr(list.Ptr))
	}
	return valTi, nil
}

func ruleSet0(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"set0 takes (name value)").WithPtr(diag.Ptr(list.Ptr))
	}
	if _, derr := c.Infer(env, ctx, args[1]); derr != nil {
		return types.TypeInfo{}, derr
	}
	return types.TypeInfo{Ty: types.I32}, nil
}

func ruleIf(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 3 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"if takes (cond then else)").WithPtr(diag.Ptr(list.Ptr))
	}
	condTi, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if condTi.Ty != types.I32 {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"if's condition must be i32").WithPtr(diag.Ptr(list.Ptr))
	}
	thenTi, derr := c.Infer(env, ctx, args[1])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	elseTi, derr := c.Infer(env, ctx, args[2])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	switch {
	case thenTi.Ty == types.Never:
		return elseTi, nil
	case elseTi.Ty == types.Never:
		return thenTi, nil
	case thenTi.Ty == elseTi.Ty:
		return types.TypeInfo{Ty: thenTi.Ty, Brand: types.Join(thenTi.Brand, elseTi.Brand)}, nil
	default:
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"if's branches do not agree up to never").WithPtr(diag.Ptr(list.Ptr))
	}
}

func ruleFor(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 4 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"for takes (var start end body)").WithPtr(diag.Ptr(list.Ptr))
	}
	varName, ok := args[0].(*ast.Ident)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"for's first argument must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	for _, bound := range args[1:3] {
		ti, derr := c.Infer(env, ctx, bound)
		if derr != nil {
			return types.TypeInfo{}, derr
		}
		if ti.Ty != types.I32 {
			return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
				"for's bounds must be i32").WithPtr(diag.Ptr(list.Ptr))
		}
	}
	env.Push()
	defer env.Pop()
	env.Define(varName.Name, types.TypeInfo{Ty: types.I32})
	if _, derr := c.Infer(env, ctx, args[3]); derr != nil {
		return types.TypeInfo{}, derr
	}
	return types.TypeInfo{Ty: types.I32}, nil
}

func ruleReturn(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"return takes exactly one argument").WithPtr(diag.Ptr(list.Ptr))
	}
	ti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if ti.Ty != ctx.ReturnType.Ty {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"return's argument is not assign-compatible with the function's declared return type").WithPtr(diag.Ptr(list.Ptr))
	}
	return types.TypeInfo{Ty: types.Never}, nil
}
