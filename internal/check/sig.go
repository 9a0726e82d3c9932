// Package check implements the type & effect checker that walks a
// fully monomorphic program and, for every expression, returns a
// types.TypeInfo under a lexical environment and an implicit
// world-capability state. Split by concern across several files
// (operators, data operations, task/async forms) the way a checker
// covering a wide form surface typically is. World-capability gating
// uses worlds.World's closed boolean record rather than an open
// {Name, Meta} capability token — the gate set here is fixed and
// known at compile time, so a capability registry would model
// nothing an open string set doesn't already cost more to query.
package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/types"
)

// FnSig is a known function's call contract: parameter types (with
// brands), return type, and whether it may only be called from an
// async context.
type FnSig struct {
	Params []types.TypeInfo
	Return types.TypeInfo
	Kind   ast.DeclKind // Defn or DefAsync
}

// BudgetMode is the closed set of budget.cfg_v1 execution modes.
type BudgetMode string

const (
	ModeTrap      BudgetMode = "trap_v1"
	ModeResultErr BudgetMode = "result_err_v1"
	ModeYield     BudgetMode = "yield_v1"
)

// BudgetConfig is the parsed form of a budget.cfg_v1 descriptor's
// arguments (arch-profile-sourced configs arrive as the same shape).
type BudgetConfig struct {
	Mode     BudgetMode
	MaxCases int
}

// ProfileResolver looks up a named architecture-manifest budget
// profile, used by budget.scope_from_arch_v1.
type ProfileResolver func(profileID string) (BudgetConfig, bool)
