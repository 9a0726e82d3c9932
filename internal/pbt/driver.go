package pbt

import (
	"strconv"

	"github.com/x07lang/x07ast/internal/ast"
)

// driverSchemaVersion marks the schema_version field of every
// synthesised driver document.
const driverSchemaVersion = "x07ast.pbt.driver/v1"

// BudgetScope, when set, wraps the property call in a trapping budget
// scope so a resource violation surfaces as a classifiable trap
// rather than escaping the case loop.
type BudgetScope struct {
	AllocBytes int
}

// headerWordBytes is the width of each u32 LE field in the case
// header (the length prefix and every offset entry).
const headerWordBytes = 4

func headerLen(nparams int) int32 {
	// the length prefix plus nparams+1 offset entries
	return int32(headerWordBytes * (nparams + 2))
}

// idt builds a bare identifier reference.
func idt(name string) ast.Expr { return &ast.Ident{Name: name} }

func lit(v int32) ast.Expr { return &ast.Int{Value: v} }

func lst(head string, args ...ast.Expr) ast.Expr {
	items := make([]ast.Expr, 0, len(args)+1)
	items = append(items, &ast.Ident{Name: head})
	items = append(items, args...)
	return &ast.List{Items: items}
}

// BuildDriverEntry synthesises a compact entry document that decodes
// `input` per EncodeCase's layout and calls propertyQualified with one
// argument per spec, in order. Bytes parameters are passed as the raw
// bytes_view slice (no copy) — the engine always declares its
// generated property signatures with bytes_view parameters for bytes
// generators, since the decoded value never needs to outlive the
// call.
func BuildDriverEntry(moduleID, propertyQualified string, params []ParamSpec, budgetScope *BudgetScope) *ast.Entry {
	// (let input_view (bytes.view input) body)
	body := buildCall(propertyQualified, params)
	if budgetScope != nil {
		cfg := lst("budget.cfg_v1", idt("trap_v1"), lit(int32(budgetScope.AllocBytes)))
		body = lst("budget.scope_v1", cfg, body)
	}
	body = lst("let", idt("n"), lst("view.read_i32_le_v1", idt("input_view"), lit(0)), body)
	body = lst("let", idt("input_view"), lst("bytes.view", idt("input")), body)

	return &ast.Entry{
		SchemaVersion: driverSchemaVersion,
		ModuleID:      moduleID,
		Imports:       []string{},
		Decls: []ast.Decl{
			{Kind: ast.DeclExtern, Name: "input", ReturnType: "bytes"},
		},
		Solve: body,
	}
}

// buildCall nests the per-parameter decode lets around a call to the
// property, innermost first so earlier bindings are in scope for
// later offset arithmetic.
func buildCall(propertyQualified string, params []ParamSpec) ast.Expr {
	callArgs := make([]ast.Expr, len(params))
	for i := range params {
		callArgs[i] = idt(paramLocalName(i))
	}
	inner := ast.Expr(lst(propertyQualified, callArgs...))

	payloadBase := headerLen(len(params))
	for i := len(params) - 1; i >= 0; i-- {
		inner = decodeParam(i, params[i], payloadBase, inner)
	}
	return inner
}

func paramLocalName(i int) string {
	return "p" + strconv.Itoa(i)
}

func offsetExprFor(paramIndex int) ast.Expr {
	// off[i] lives at byte 4 + 4*i; off[i+1] at byte 4 + 4*(i+1).
	return lit(headerWordBytes + headerWordBytes*int32(paramIndex))
}

// decodeParam wraps body in a `let` binding p<i> to the value decoded
// from the case payload at the offsets recorded for parameter i.
func decodeParam(i int, p ParamSpec, payloadBase int32, body ast.Expr) ast.Expr {
	startOff := lst("view.read_i32_le_v1", idt("input_view"), offsetExprFor(i))
	endOff := lst("view.read_i32_le_v1", idt("input_view"), offsetExprFor(i+1))

	var decoded ast.Expr
	switch p.Gen.TypeName() {
	case KindI32:
		decoded = lst("view.read_i32_le_v1", idt("input_view"),
			lst("+", lit(payloadBase), startOff))
	default: // KindBytes
		decoded = lst("view.slice",
			idt("input_view"),
			lst("+", lit(payloadBase), startOff),
			lst("+", lit(payloadBase), endOff))
	}
	return lst("let", idt(paramLocalName(i)), decoded, body)
}
