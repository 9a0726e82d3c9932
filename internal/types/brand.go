package types

// Brand is the orthogonal nominal tag: None, a concrete Brand(id), or
// Any (the join element for empty Ok/None constructions).
type Brand struct {
	kind brandKind
	id   string
}

type brandKind uint8

const (
	brandNone brandKind = iota
	brandConcrete
	brandAny
)

var (
	NoBrand  = Brand{kind: brandNone}
	AnyBrand = Brand{kind: brandAny}
)

// NewBrand constructs a concrete brand with the given nominal id.
func NewBrand(id string) Brand { return Brand{kind: brandConcrete, id: id} }

func (b Brand) IsNone() bool     { return b.kind == brandNone }
func (b Brand) IsAny() bool      { return b.kind == brandAny }
func (b Brand) IsConcrete() bool { return b.kind == brandConcrete }
func (b Brand) ID() string       { return b.id }

func (b Brand) String() string {
	switch b.kind {
	case brandNone:
		return "None"
	case brandAny:
		return "Any"
	default:
		return "Brand(" + b.id + ")"
	}
}

// Join computes the brand-join ladder: equal brands preserve; Any is
// identity; unequal concrete brands unify to None.
func Join(a, b Brand) Brand {
	if a.IsAny() {
		return b
	}
	if b.IsAny() {
		return a
	}
	if a.kind == b.kind && a.id == b.id {
		return a
	}
	return NoBrand
}

// FitsParam reports whether an argument's brand is compatible with a
// parameter's declared brand: None fits a param requiring None; a
// concrete brand fits itself exactly; Any (from empty Ok/None) fits
// any brand.
func FitsParam(argBrand, paramBrand Brand) bool {
	if argBrand.IsAny() {
		return true
	}
	if paramBrand.IsNone() {
		return argBrand.IsNone()
	}
	return argBrand.kind == paramBrand.kind && argBrand.id == paramBrand.id
}

// TypeInfo is the result of checking any expression: its structural
// type, its brand, and (meaningful only for bytes_view) whether it is
// a view_full borrow of its owner.
type TypeInfo struct {
	Ty       Type
	Brand    Brand
	ViewFull bool
}

// PreservesBrand implements the Open Question decision recorded in
// DESIGN.md: a wrapper-crossing operation preserves brand iff the
// underlying value is unchanged, or (for to_bytes_preserve_if_full_v1
// specifically) the view covers its owner's full extent.
func PreservesBrand(head string, viewFull bool) bool {
	switch head {
	case "view.slice", "view.subview", "try",
		"std.brand.erase_view_v1", "std.brand.cast_view_v1":
		return true
	case "std.brand.to_bytes_preserve_if_full_v1":
		return viewFull
	default:
		return false
	}
}
