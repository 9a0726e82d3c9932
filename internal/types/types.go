// Package types defines the closed primitive type universe and the
// orthogonal Brand lattice. Generalised from an open, inferred type
// algebra to a closed, finite primitive set; Brand is kept orthogonal
// to Type rather than folded into a combined kind switch.
package types

// Type is one member of the closed primitive type universe.
type Type string

const (
	I32    Type = "i32"
	Never  Type = "never"
	Bytes  Type = "bytes"
	View   Type = "bytes_view"
	VecU8    Type = "vec_u8"
	VecValue Type = "vec_value"

	ResultI32        Type = "result_i32"
	ResultBytes      Type = "result_bytes"
	ResultView       Type = "result_bytes_view"
	ResultResultBytes Type = "result_result_bytes"
	OptionI32   Type = "option_i32"
	OptionBytes Type = "option_bytes"
	OptionView  Type = "option_bytes_view"

	TaskHandleBytes       Type = "task_handle_bytes_v1"
	TaskHandleResultBytes Type = "task_handle_result_bytes_v1"
	TaskSlot              Type = "task_slot_v1"
	TaskSelectEvt         Type = "task_select_evt_v1"
	OptionTaskSelectEvt   Type = "option_task_select_evt_v1"

	PtrConstU8   Type = "ptr_const_u8"
	PtrMutU8     Type = "ptr_mut_u8"
	PtrConstI32  Type = "ptr_const_i32"
	PtrMutI32    Type = "ptr_mut_i32"
	PtrConstVoid Type = "ptr_const_void"
	PtrMutVoid   Type = "ptr_mut_void"

	Iface Type = "iface"
)

// primitiveSet is the closed universe; used to validate type
// arguments and declared types at intake.
var primitiveSet = map[Type]bool{
	I32: true, Never: true, Bytes: true, View: true, VecU8: true, VecValue: true,
	ResultI32: true, ResultBytes: true, ResultView: true, ResultResultBytes: true,
	OptionI32: true, OptionBytes: true, OptionView: true,
	TaskHandleBytes: true, TaskHandleResultBytes: true, TaskSlot: true,
	TaskSelectEvt: true, OptionTaskSelectEvt: true,
	PtrConstU8: true, PtrMutU8: true, PtrConstI32: true, PtrMutI32: true,
	PtrConstVoid: true, PtrMutVoid: true,
	Iface: true,
}

// IsPrimitive reports whether t is a member of the closed universe.
func IsPrimitive(t Type) bool { return primitiveSet[t] }

// IsBrandable reports whether values of t may carry a Brand: bytes,
// bytes_view, and the option/result wrappers of those.
func IsBrandable(t Type) bool {
	switch t {
	case Bytes, View, ResultBytes, ResultView, OptionBytes, OptionView:
		return true
	}
	return false
}

// IsViewLike reports whether t is bytes_view or an option/result
// wrapper of it — the set the borrow analyser must trace provenance
// for.
func IsViewLike(t Type) bool {
	switch t {
	case View, ResultView, OptionView:
		return true
	}
	return false
}
