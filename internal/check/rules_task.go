package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/types"
)

func init() {
	registerForms(map[string]FormRule{
		"task.scope_v1":                ruleTaskScope,
		"task.scope.start_soon_v1":     ruleTaskStartSoon,
		"task.scope.select_v1":         ruleTaskSelect,
		"task.scope.select_try_v1":     ruleTaskSelect,
		"try":                          ruleTry,
	})
}

// scopeEscapes reports whether ti is (or wraps) task_slot_v1 or
// task_select_evt_v1 — the two types forbidden from escaping their
// enclosing task.scope_v1 form.
func scopeEscapes(t types.Type) bool {
	switch t {
	case types.TaskSlot, types.TaskSelectEvt, types.OptionTaskSelectEvt:
		return true
	}
	return false
}

func ruleTaskScope(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"task.scope_v1 takes (cfg body)").WithPtr(diag.Ptr(list.Ptr))
	}
	if _, ok := args[0].(*ast.List); !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"task.scope_v1's first argument must be a descriptor form").WithPtr(diag.Ptr(list.Ptr))
	}
	nested := ctx.enterTaskScope()
	env.Push()
	defer env.Pop()
	bodyTi, derr := c.Infer(env, nested, args[1])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if scopeEscapes(bodyTi.Ty) {
		code := diag.CodeSlotEscapesScope
		if bodyTi.Ty == types.TaskSelectEvt || bodyTi.Ty == types.OptionTaskSelectEvt {
			code = diag.CodeSelectEvtEscapesScope
		}
		return types.TypeInfo{}, diag.New(diag.Typing, code, "check",
			"a task_slot_v1/task_select_evt_v1 value must not escape its task.scope_v1").WithPtr(diag.Ptr(list.Ptr))
	}
	return bodyTi, nil
}

// immediateAsyncCall checks that expr is a direct call to a defasync
// symbol, the structured-concurrency invariant start_soon_v1 and
// async_let_*_v1 both require of their argument.
func immediateAsyncCall(ctx *Context, expr ast.Expr, ptr ast.Ptr) *diag.Error {
	list, ok := expr.(*ast.List)
	if !ok {
		return diag.New(diag.Typing, diag.CodeScopeIllegalSpawn, "check",
			"must be an immediate call to a defasync symbol").WithPtr(diag.Ptr(ptr))
	}
	head, ok := list.Head()
	if !ok {
		return diag.New(diag.Typing, diag.CodeScopeIllegalSpawn, "check",
			"must be an immediate call to a defasync symbol").WithPtr(diag.Ptr(ptr))
	}
	sig, ok := ctx.Sigs[head]
	if !ok || sig.Kind != ast.DeclDefAsync {
		return diag.New(diag.Typing, diag.CodeScopeIllegalSpawn, "check",
			head+" is not a defasync symbol").WithPtr(diag.Ptr(ptr))
	}
	return nil
}

func ruleTaskStartSoon(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"task.scope.start_soon_v1 takes exactly one argument").WithPtr(diag.Ptr(list.Ptr))
	}
	if derr := immediateAsyncCall(ctx, args[0], list.Ptr); derr != nil {
		return types.TypeInfo{}, derr
	}
	return types.TypeInfo{Ty: types.TaskHandleBytes}, nil
}

// ruleAsyncLet handles the async_let_*_v1 family (async_let_bytes_v1,
// async_let_i32_v1, ...): (async_let_<ty>_v1 name expr body).
func ruleAsyncLet(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 3 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"async_let_*_v1 takes (name expr body)").WithPtr(diag.Ptr(list.Ptr))
	}
	name, ok := args[0].(*ast.Ident)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"async_let_*_v1's first argument must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	if derr := immediateAsyncCall(ctx, args[1], list.Ptr); derr != nil {
		return types.TypeInfo{}, derr
	}
	env.Push()
	defer env.Pop()
	env.Define(name.Name, types.TypeInfo{Ty: types.TaskSlot})
	return c.Infer(env, ctx, args[2])
}

// ruleTaskSelect handles both task.scope.select_v1 and
// task.scope.select_try_v1: cases must be a declarative list of
// case_slot_bytes_v1/case_chan_recv_bytes_v1 forms.
func ruleTaskSelect(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) == 0 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"task.scope.select_v1/select_try_v1 requires a cases list").WithPtr(diag.Ptr(list.Ptr))
	}
	casesList, ok := args[0].(*ast.List)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"select's cases argument must be a list").WithPtr(diag.Ptr(list.Ptr))
	}
	for _, caseExpr := range casesList.Items {
		caseList, ok := caseExpr.(*ast.List)
		if !ok {
			return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
				"each select case must be a case_slot_bytes_v1/case_chan_recv_bytes_v1 form").WithPtr(diag.Ptr(list.Ptr))
		}
		head, ok := caseList.Head()
		if !ok || (head != "case_slot_bytes_v1" && head != "case_chan_recv_bytes_v1") {
			return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
				"each select case must be a case_slot_bytes_v1/case_chan_recv_bytes_v1 form").WithPtr(diag.Ptr(list.Ptr))
		}
	}
	return types.TypeInfo{Ty: types.OptionTaskSelectEvt}, nil
}

func ruleTry(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"try takes exactly one argument").WithPtr(diag.Ptr(list.Ptr))
	}
	ti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	payload, ok := resultPayload(ti.Ty)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"try's argument must be a result_* value").WithPtr(diag.Ptr(list.Ptr))
	}
	if !isResultType(ctx.ReturnType.Ty) {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"try is only valid when the enclosing function's return type is a compatible result_*").WithPtr(diag.Ptr(list.Ptr))
	}
	brand := types.NoBrand
	if types.PreservesBrand("try", ti.ViewFull) {
		brand = ti.Brand
	}
	return types.TypeInfo{Ty: payload, Brand: brand, ViewFull: ti.ViewFull}, nil
}

func resultPayload(t types.Type) (types.Type, bool) {
	switch t {
	case types.ResultI32:
		return types.I32, true
	case types.ResultBytes:
		return types.Bytes, true
	case types.ResultView:
		return types.View, true
	case types.ResultResultBytes:
		return types.ResultBytes, true
	}
	return "", false
}
