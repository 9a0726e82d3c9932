// Package link combines a root entry plus its transitively imported
// modules into a single internal/program.GenericProgram with
// qualified names, duplicate-symbol detection, and the module export
// table. Depth-first import resolution with cycle detection,
// generalised from value-level dictionary resolution to a purely
// structural declaration merge.
package link

import (
	"fmt"
	"sort"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
)

// ModuleSet is the fileset of module documents indexed by module_id,
// the linker's input alongside the root entry.
type ModuleSet map[string]*ast.Module

// CycleError reports an import cycle detected during depth-first
// import resolution.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %v", e.Cycle)
}

// Link resolves root's imports depth-first against modules, detects
// duplicate definitions, builds the module export table, and returns
// a single GenericProgram with qualified names.
func Link(root *ast.Entry, modules ModuleSet) (*program.GenericProgram, *diag.Error) {
	visited := map[string]bool{}
	inPath := map[string]bool{}
	var order []string
	var cyclePath []string

	var dfs func(id string) error
	dfs = func(id string) error {
		if visited[id] {
			return nil
		}
		if inPath[id] {
			idx := indexOf(cyclePath, id)
			return &CycleError{Cycle: append(append([]string{}, cyclePath[idx:]...), id)}
		}
		mod, ok := modules[id]
		if !ok {
			return fmt.Errorf("unresolved import: module %q not found", id)
		}
		inPath[id] = true
		cyclePath = append(cyclePath, id)
		for _, imp := range mod.Imports {
			if err := dfs(imp); err != nil {
				return err
			}
		}
		inPath[id] = false
		cyclePath = cyclePath[:len(cyclePath)-1]
		visited[id] = true
		order = append(order, id)
		return nil
	}

	for _, imp := range root.Imports {
		if err := dfs(imp); err != nil {
			if ce, ok := err.(*CycleError); ok {
				return nil, diag.New(diag.Typing, diag.CodeUnresolvedImport, "link", ce.Error())
			}
			return nil, diag.New(diag.Typing, diag.CodeUnresolvedImport, "link", err.Error())
		}
	}

	exports := make(program.ExportTable, len(order)+1)
	for _, id := range order {
		exports[id] = modules[id].Exports()
	}
	exports[root.ModuleID] = root.Exports()

	decls := make(map[program.QualifiedName]*ast.Decl)
	var declOrder []program.QualifiedName
	seen := make(map[program.QualifiedName]string) // qualified name -> defining module, for duplicate detection

	addDecls := func(moduleID string, ds []ast.Decl) *diag.Error {
		for i := range ds {
			d := ds[i]
			if d.Kind == ast.DeclExport {
				continue // exports are markers, not separate declarations
			}
			q := program.Qualify(moduleID, d.Name)
			if prior, dup := seen[q]; dup {
				return diag.New(diag.Typing, diag.CodeDuplicateSymbol, "link",
					fmt.Sprintf("duplicate definition of %q (also defined in %q)", q, prior)).WithPtr(diag.Ptr(d.Ptr))
			}
			seen[q] = moduleID
			decls[q] = &d
			declOrder = append(declOrder, q)
		}
		return nil
	}

	for _, id := range order {
		if derr := addDecls(id, modules[id].Decls); derr != nil {
			return nil, derr
		}
	}
	if derr := addDecls(root.ModuleID, root.Decls); derr != nil {
		return nil, derr
	}

	if derr := verifyCrossModuleReferences(root.ModuleID, root.Solve, exports, root.ModuleID); derr != nil {
		return nil, derr
	}
	for _, id := range order {
		mod := modules[id]
		for _, d := range mod.Decls {
			if d.Body == nil {
				continue
			}
			if derr := verifyCrossModuleReferences(id, d.Body, exports, id); derr != nil {
				return nil, derr
			}
		}
	}

	sort.Strings(order) // deterministic iteration elsewhere; declOrder retains link order

	return &program.GenericProgram{
		Decls:       decls,
		Order:       declOrder,
		Solve:       root.Solve,
		SolveModule: root.ModuleID,
		Exports:     exports,
	}, nil
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return 0
}
