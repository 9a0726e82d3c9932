package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/types"
)

// dataSpec is one bytes.*/view.*/vec_*/map_*/set_*/chan.* head's
// arity and result-type contract, collapsed into one table since every
// one of these forms shares the same "fixed arity, fixed result type,
// maybe an owner-identifier argument" shape.
type dataSpec struct {
	ArgCount      int
	OwnerArgIndex int // index into Args() that must be a bare identifier, or -1
	Result        types.Type
}

var dataHeads = map[string]dataSpec{
	"bytes.view":          {ArgCount: 1, OwnerArgIndex: 0, Result: types.View},
	"bytes.subview":       {ArgCount: 3, OwnerArgIndex: 0, Result: types.View},
	"bytes.len":           {ArgCount: 1, OwnerArgIndex: -1, Result: types.I32},
	"bytes.eq_range":      {ArgCount: 2, OwnerArgIndex: -1, Result: types.I32},
	"bytes.cmp_range":     {ArgCount: 2, OwnerArgIndex: -1, Result: types.I32},
	"bytes.hash32_range":  {ArgCount: 1, OwnerArgIndex: -1, Result: types.I32},
	"bytes.clone":         {ArgCount: 1, OwnerArgIndex: -1, Result: types.Bytes},
	"bytes.view_lit":      {ArgCount: 1, OwnerArgIndex: -1, Result: types.View},

	"view.slice":    {ArgCount: 3, OwnerArgIndex: -1, Result: types.View},
	"view.subview":  {ArgCount: 3, OwnerArgIndex: -1, Result: types.View},

	"vec_u8.as_view": {ArgCount: 1, OwnerArgIndex: 0, Result: types.View},
	"vec_u8.push":    {ArgCount: 2, OwnerArgIndex: -1, Result: types.VecU8},
	"vec_u8.len":     {ArgCount: 1, OwnerArgIndex: -1, Result: types.I32},

	"vec_value.push": {ArgCount: 2, OwnerArgIndex: -1, Result: types.VecValue},
	"vec_value.len":  {ArgCount: 1, OwnerArgIndex: -1, Result: types.I32},

	"map_value.get": {ArgCount: 2, OwnerArgIndex: -1, Result: types.OptionView},
	"map_value.set": {ArgCount: 3, OwnerArgIndex: -1, Result: types.I32},
	"map_u32.get":    {ArgCount: 2, OwnerArgIndex: -1, Result: types.OptionI32},
	"map_u32.set":    {ArgCount: 3, OwnerArgIndex: -1, Result: types.I32},
	"set_u32.has":    {ArgCount: 2, OwnerArgIndex: -1, Result: types.I32},
	"set_u32.add":    {ArgCount: 2, OwnerArgIndex: -1, Result: types.I32},

	"chan.bytes.send": {ArgCount: 2, OwnerArgIndex: -1, Result: types.ResultI32},
	"chan.bytes.recv": {ArgCount: 1, OwnerArgIndex: -1, Result: types.ResultView},
}

func init() {
	rules := make(map[string]FormRule, len(dataHeads))
	for head := range dataHeads {
		head := head
		rules[head] = func(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
			return c.inferDataOp(env, ctx, list, head)
		}
	}
	registerForms(rules)
}

// inferDataOp enforces the data-operation owner-identifier rule: any
// operation that borrows a bytes_view from a named owner must take
// that owner as a bare identifier, so the borrow analyser can later
// anchor the resulting view's provenance.
func (c *Checker) inferDataOp(env *Env, ctx *Context, list *ast.List, head string) (types.TypeInfo, *diag.Error) {
	spec := dataHeads[head]
	args := list.Args()
	if len(args) != spec.ArgCount {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			head+" has a fixed arity").WithPtr(diag.Ptr(list.Ptr))
	}
	if spec.OwnerArgIndex >= 0 {
		if _, ok := args[spec.OwnerArgIndex].(*ast.Ident); !ok {
			return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
				head+" requires its owner argument to be a bare identifier so its provenance is provable").
				WithPtr(diag.Ptr(list.Ptr))
		}
	}
	for _, a := range args {
		if _, derr := c.Infer(env, ctx, a); derr != nil {
			return types.TypeInfo{}, derr
		}
	}
	return types.TypeInfo{Ty: spec.Result}, nil
}
