package ast

// Kind distinguishes a library module from a program entry point.
type Kind string

const (
	KindModule Kind = "module"
	KindEntry  Kind = "entry"
)

// TypeParam is a polymorphic type parameter on a defn/defasync
// declaration, with a bound drawn from a closed set.
type TypeParam struct {
	Name  string
	Bound Bound
}

// Bound is one of the closed type-parameter bounds.
type Bound string

const (
	BoundAny       Bound = "any"
	BoundBytesLike Bound = "bytes_like"
	BoundNumLike   Bound = "num_like"
	BoundValue     Bound = "value"
	BoundHashable  Bound = "hashable"
	BoundOrderable Bound = "orderable"
)

// Param is a function value parameter: a name plus its declared type
// name (resolved to a concrete types.Type by the checker; kept as a
// string here since the AST layer is pre-type-checking).
type Param struct {
	Name    string
	TypeRef string
}

// DeclKind distinguishes the four declaration forms.
type DeclKind string

const (
	DeclExport   DeclKind = "export"
	DeclDefn     DeclKind = "defn"
	DeclDefAsync DeclKind = "defasync"
	DeclExtern   DeclKind = "extern"
)

// Decl is one top-level declaration inside a module's decls list.
type Decl struct {
	Kind       DeclKind
	Name       string
	TypeParams []TypeParam // empty unless Kind is Defn/DefAsync
	Params     []Param
	ReturnType string
	Body       Expr // nil for Export/Extern
	Ptr        Ptr
}

// Module is a `{kind: "module", ...}` document: a library of
// declarations with no solve expression.
type Module struct {
	SchemaVersion string
	ModuleID      string
	Imports       []string
	Decls         []Decl
}

// Entry is a `{kind: "entry", ...}` document: a module plus a solve
// expression.
type Entry struct {
	SchemaVersion string
	ModuleID      string
	Imports       []string
	Decls         []Decl
	Solve         Expr
}

// Exports returns the set of symbol names this module/entry exports
// (those declared via an `export` decl).
func (m *Module) Exports() map[string]bool {
	return exportsOf(m.Decls)
}

func (e *Entry) Exports() map[string]bool {
	return exportsOf(e.Decls)
}

func exportsOf(decls []Decl) map[string]bool {
	out := make(map[string]bool)
	for _, d := range decls {
		if d.Kind == DeclExport {
			out[d.Name] = true
		}
	}
	return out
}
