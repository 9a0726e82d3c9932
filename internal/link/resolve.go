package link

import (
	"strings"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
)

// verifyCrossModuleReferences walks expr looking for qualified
// identifier heads of the form "other_module_id.symbol" in call
// position and rejects any that do not resolve to an exported
// declaration of that module. Unqualified heads are not checked here:
// an unqualified name that refers to another module's symbol is not
// rejected by this pass.
func verifyCrossModuleReferences(currentModule string, expr ast.Expr, exports program.ExportTable, selfModule string) *diag.Error {
	switch n := expr.(type) {
	case *ast.List:
		if head, ok := n.Head(); ok {
			if derr := checkHead(head, exports, selfModule, n.Ptr); derr != nil {
				return derr
			}
		}
		for _, item := range n.Items {
			if derr := verifyCrossModuleReferences(currentModule, item, exports, selfModule); derr != nil {
				return derr
			}
		}
	}
	return nil
}

func checkHead(head string, exports program.ExportTable, selfModule string, ptr ast.Ptr) *diag.Error {
	idx := strings.LastIndex(head, ".")
	if idx <= 0 {
		return nil // unqualified heads are local symbols, operators, or intrinsics
	}
	modulePart := head[:idx]
	symbolPart := head[idx+1:]
	if modulePart == selfModule {
		return nil // calls within one's own module need not be "exported"
	}
	if _, isModule := exports[modulePart]; !isModule {
		return nil // not a module-qualified head at all (a builtin/intrinsic dotted name, e.g. "bytes.view")
	}
	if !exports.IsExported(modulePart, symbolPart) {
		return diag.New(diag.Typing, diag.CodeNotExported, "link",
			"cross-module reference \""+head+"\" does not resolve to an exported declaration").
			WithPtr(diag.Ptr(ptr))
	}
	return nil
}
