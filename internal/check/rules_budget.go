package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/types"
)

func init() {
	registerForms(map[string]FormRule{
		"budget.cfg_v1":             ruleBudgetCfgMisplaced,
		"budget.scope_v1":           ruleBudgetScope,
		"budget.scope_from_arch_v1": ruleBudgetScopeFromArch,
	})
}

// ruleBudgetCfgMisplaced fires whenever a budget.cfg_v1 form is
// reached through the ordinary expression-inference path: it is a
// descriptor, not a value, and budget.scope_v1 parses it directly
// without routing it through Infer.
func ruleBudgetCfgMisplaced(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeBudgetCfgMisuse, "check",
		"budget.cfg_v1 may only appear as budget.scope_v1's first argument").WithPtr(diag.Ptr(list.Ptr))
}

func parseBudgetConfig(e ast.Expr) (BudgetConfig, *diag.Error) {
	list, ok := e.(*ast.List)
	if !ok {
		return BudgetConfig{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"budget.scope_v1's first argument must be a budget.cfg_v1 form")
	}
	head, ok := list.Head()
	if !ok || head != "budget.cfg_v1" {
		return BudgetConfig{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"budget.scope_v1's first argument must be a budget.cfg_v1 form").WithPtr(diag.Ptr(list.Ptr))
	}
	args := list.Args()
	if len(args) == 0 {
		return BudgetConfig{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"budget.cfg_v1 requires at least a mode").WithPtr(diag.Ptr(list.Ptr))
	}
	modeIdent, ok := args[0].(*ast.Ident)
	if !ok {
		return BudgetConfig{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"budget.cfg_v1's mode must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	cfg := BudgetConfig{Mode: BudgetMode(modeIdent.Name)}
	if cfg.Mode != ModeTrap && cfg.Mode != ModeResultErr && cfg.Mode != ModeYield {
		return BudgetConfig{}, diag.New(diag.Typing, diag.CodeBudgetCfgMisuse, "check",
			"budget.cfg_v1's mode must be one of trap_v1, result_err_v1, yield_v1").WithPtr(diag.Ptr(list.Ptr))
	}
	if len(args) > 1 {
		if n, ok := args[1].(*ast.Int); ok {
			cfg.MaxCases = int(n.Value)
		}
	}
	return cfg, nil
}

func checkBudgetBody(c *Checker, env *Env, ctx *Context, cfg BudgetConfig, body ast.Expr, ptr ast.Ptr) (types.TypeInfo, *diag.Error) {
	if cfg.Mode == ModeYield && !ctx.AllowAsyncOps {
		return types.TypeInfo{}, diag.New(diag.Unsupported, diag.CodeAsyncOutsideContext, "check",
			"a yield_v1 budget scope must be within an async context").WithPtr(diag.Ptr(ptr))
	}
	bodyTi, derr := c.Infer(env, ctx, body)
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if cfg.Mode == ModeResultErr && bodyTi.Ty != types.Never && !isResultType(bodyTi.Ty) {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeBudgetCfgMisuse, "check",
			"a result_err_v1 budget scope's body must yield a result_* type").WithPtr(diag.Ptr(ptr))
	}
	return bodyTi, nil
}

func isResultType(t types.Type) bool {
	switch t {
	case types.ResultI32, types.ResultBytes, types.ResultView, types.ResultResultBytes:
		return true
	}
	return false
}

func ruleBudgetScope(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"budget.scope_v1 takes (cfg body)").WithPtr(diag.Ptr(list.Ptr))
	}
	cfg, derr := parseBudgetConfig(args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	return checkBudgetBody(c, env, ctx, cfg, args[1], list.Ptr)
}

func ruleBudgetScopeFromArch(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"budget.scope_from_arch_v1 takes (profile_id body)").WithPtr(diag.Ptr(list.Ptr))
	}
	profileIdent, ok := args[0].(*ast.Ident)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "check",
			"budget.scope_from_arch_v1's profile id must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	if ctx.Profiles == nil {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeBudgetCfgMisuse, "check",
			"no architecture manifest profile resolver is configured").WithPtr(diag.Ptr(list.Ptr))
	}
	cfg, ok := ctx.Profiles(profileIdent.Name)
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeBudgetCfgMisuse, "check",
			"unknown architecture manifest profile "+profileIdent.Name).WithPtr(diag.Ptr(list.Ptr))
	}
	return checkBudgetBody(c, env, ctx, cfg, args[1], list.Ptr)
}
