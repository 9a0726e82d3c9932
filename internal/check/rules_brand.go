package check

import (
	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/types"
)

func init() {
	registerForms(map[string]FormRule{
		"std.brand.view_v1":                    ruleBrandView,
		"std.brand.cast_view_v1":                ruleBrandCastView,
		"std.brand.cast_bytes_v1":               ruleBrandCastBytes,
		"std.brand.cast_view_copy_v1":           ruleBrandCastViewCopy,
		"std.brand.erase_view_v1":               ruleBrandEraseView,
		"std.brand.to_bytes_preserve_if_full_v1": ruleBrandToBytesPreserveIfFull,
	})
}

func brandIDArg(e ast.Expr) (string, bool) {
	id, ok := e.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func ruleBrandView(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"std.brand.view_v1 takes (owner brand_id)").WithPtr(diag.Ptr(list.Ptr))
	}
	if _, ok := args[0].(*ast.Ident); !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.view_v1 requires its owner argument to be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	brandID, ok := brandIDArg(args[1])
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.view_v1's brand id must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	if _, derr := c.Infer(env, ctx, args[0]); derr != nil {
		return types.TypeInfo{}, derr
	}
	return types.TypeInfo{Ty: types.View, Brand: types.NewBrand(brandID), ViewFull: true}, nil
}

func ruleBrandCastView(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"std.brand.cast_view_v1 takes (view brand_id)").WithPtr(diag.Ptr(list.Ptr))
	}
	vti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if !types.IsViewLike(vti.Ty) {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.cast_view_v1's first argument must be view-like").WithPtr(diag.Ptr(list.Ptr))
	}
	brandID, ok := brandIDArg(args[1])
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.cast_view_v1's brand id must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	return types.TypeInfo{Ty: vti.Ty, Brand: types.NewBrand(brandID), ViewFull: vti.ViewFull}, nil
}

func ruleBrandCastBytes(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 2 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"std.brand.cast_bytes_v1 takes (bytes brand_id)").WithPtr(diag.Ptr(list.Ptr))
	}
	bti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if bti.Ty != types.Bytes {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.cast_bytes_v1's first argument must be bytes").WithPtr(diag.Ptr(list.Ptr))
	}
	brandID, ok := brandIDArg(args[1])
	if !ok {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.cast_bytes_v1's brand id must be a bare identifier").WithPtr(diag.Ptr(list.Ptr))
	}
	return types.TypeInfo{Ty: types.Bytes, Brand: types.NewBrand(brandID)}, nil
}

func ruleBrandCastViewCopy(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	ti, derr := ruleBrandCastView(c, env, ctx, list)
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	return ti, nil // a fresh copy, so its provenance is Runtime-anchored (internal/borrow)
}

func ruleBrandEraseView(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"std.brand.erase_view_v1 takes exactly one argument").WithPtr(diag.Ptr(list.Ptr))
	}
	vti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if !types.IsViewLike(vti.Ty) {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.erase_view_v1's argument must be view-like").WithPtr(diag.Ptr(list.Ptr))
	}
	return types.TypeInfo{Ty: vti.Ty, Brand: types.NoBrand, ViewFull: vti.ViewFull}, nil
}

func ruleBrandToBytesPreserveIfFull(c *Checker, env *Env, ctx *Context, list *ast.List) (types.TypeInfo, *diag.Error) {
	args := list.Args()
	if len(args) != 1 {
		return types.TypeInfo{}, diag.New(diag.Parse, diag.CodeBadListArity, "check",
			"std.brand.to_bytes_preserve_if_full_v1 takes exactly one argument").WithPtr(diag.Ptr(list.Ptr))
	}
	vti, derr := c.Infer(env, ctx, args[0])
	if derr != nil {
		return types.TypeInfo{}, derr
	}
	if vti.Ty != types.View {
		return types.TypeInfo{}, diag.New(diag.Typing, diag.CodeMissingField, "check",
			"std.brand.to_bytes_preserve_if_full_v1's argument must be bytes_view").WithPtr(diag.Ptr(list.Ptr))
	}
	brand := types.NoBrand
	if types.PreservesBrand("std.brand.to_bytes_preserve_if_full_v1", vti.ViewFull) {
		brand = vti.Brand
	}
	return types.TypeInfo{Ty: types.Bytes, Brand: brand}, nil
}
