// Package program holds the cross-stage document types: the
// post-link GenericProgram (qualified declarations plus an export
// table), the post-monomorphisation Program, and the MonoMap
// observability sidecar. Generalised from a flattened, qualified-name
// Program concept with a separate export-table construction pass,
// adapted from evaluated value exports to a purely structural
// declaration merge.
package program

import "github.com/x07lang/x07ast/internal/ast"

// QualifiedName is a fully-qualified `module.symbol` reference, the
// concatenation scheme every cross-stage document keys declarations
// by.
type QualifiedName string

func Qualify(moduleID, symbol string) QualifiedName {
	return QualifiedName(moduleID + "." + symbol)
}

// ExportTable maps each module id to the set of symbols it exports.
type ExportTable map[string]map[string]bool

func (t ExportTable) IsExported(moduleID, symbol string) bool {
	syms, ok := t[moduleID]
	if !ok {
		return false
	}
	return syms[symbol]
}

// GenericProgram is the post-link, pre-monomorphisation program:
// every transitively reachable module's declarations, concatenated
// under qualified names, plus the entry's solve expression and the
// module export table.
type GenericProgram struct {
	Decls       map[QualifiedName]*ast.Decl
	Order       []QualifiedName // deterministic declaration order
	Solve       ast.Expr
	SolveModule string // the entry's own module id, for resolving bare names in Solve
	Exports     ExportTable
}

// Program is the fully monomorphic program the monomorphiser
// produces: no type_params, no tapp, no ty.* heads remain anywhere in
// it.
type Program struct {
	Decls map[QualifiedName]*ast.Decl
	Order []QualifiedName
	Solve ast.Expr
}

// MonoInstance is one specialisation record.
type MonoInstance struct {
	Generic        QualifiedName     `json:"generic"`
	TypeArgs       []string          `json:"type_args"`
	SpecializedName QualifiedName    `json:"specialized_name"`
	Kind           string            `json:"kind"` // "defn" | "defasync"
	DefModule      string            `json:"def_module"`
	Sites          []string          `json:"sites"` // source pointers of call sites
}

// MonoMap is the observability sidecar emitted alongside a Program:
// every specialisation, sorted by canonical key.
type MonoMap struct {
	SchemaVersion string         `json:"schema_version"`
	Instances     []MonoInstance `json:"instances"`
}

const MonoMapSchemaVersion = "x07ast.monomap/v1"
