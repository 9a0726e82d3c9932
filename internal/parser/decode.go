// Package parser decodes JSON x07AST documents into internal/ast
// trees, enforcing schema-version compatibility and symbol/shape
// validation. Generalised from text lexing to JSON decoding: the same
// lexical rules a hand-written lexer would enforce on identifiers
// (module-qualified, no reserved marker) are carried over unchanged in
// spirit even though the input is JSON, not text tokens.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
)

type jsonExpr struct {
	Kind  string            `json:"kind"`
	Value *int32            `json:"value,omitempty"`
	Name  string            `json:"name,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
	Ptr   string            `json:"ptr,omitempty"`
}

type jsonDecl struct {
	Decl       string            `json:"decl"`
	Name       string            `json:"name"`
	TypeParams []jsonTypeParam   `json:"type_params,omitempty"`
	Params     []jsonParam       `json:"params,omitempty"`
	ReturnType string            `json:"return_type,omitempty"`
	Body       json.RawMessage   `json:"body,omitempty"`
	Ptr        string            `json:"ptr,omitempty"`
}

type jsonTypeParam struct {
	Name  string `json:"name"`
	Bound string `json:"bound"`
}

type jsonParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonDocument struct {
	SchemaVersion string            `json:"schema_version"`
	Kind          string            `json:"kind"`
	ModuleID      string            `json:"module_id"`
	Imports       []string          `json:"imports"`
	Decls         []jsonDecl        `json:"decls"`
	Solve         json.RawMessage   `json:"solve,omitempty"`
}

// ParseModule decodes and validates a module document (kind=module).
func ParseModule(raw []byte) (*ast.Module, *diag.Error) {
	doc, derr := decodeDocument(raw, ast.KindModule)
	if derr != nil {
		return nil, derr
	}
	decls, derr := decodeDecls(doc.Decls)
	if derr != nil {
		return nil, derr
	}
	return &ast.Module{
		SchemaVersion: doc.SchemaVersion,
		ModuleID:      doc.ModuleID,
		Imports:       doc.Imports,
		Decls:         decls,
	}, nil
}

// ParseEntry decodes and validates an entry document (kind=entry).
func ParseEntry(raw []byte) (*ast.Entry, *diag.Error) {
	doc, derr := decodeDocument(raw, ast.KindEntry)
	if derr != nil {
		return nil, derr
	}
	decls, derr := decodeDecls(doc.Decls)
	if derr != nil {
		return nil, derr
	}
	solve, derr := decodeExpr(doc.Solve)
	if derr != nil {
		return nil, derr
	}
	return &ast.Entry{
		SchemaVersion: doc.SchemaVersion,
		ModuleID:      doc.ModuleID,
		Imports:       doc.Imports,
		Decls:         decls,
		Solve:         solve,
	}, nil
}

func decodeDocument(raw []byte, want ast.Kind) (*jsonDocument, *diag.Error) {
	if derr := ValidateStructure(raw); derr != nil {
		return nil, derr
	}
	var doc jsonDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser", err.Error())
	}
	if ast.Kind(doc.Kind) != want {
		return nil, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser",
			fmt.Sprintf("expected kind %q, got %q", want, doc.Kind))
	}
	if err := validateModuleID(doc.ModuleID); err != nil {
		return nil, diag.New(diag.Parse, diag.CodeMissingField, "parser", err.Error()).WithPtr("/module_id")
	}
	return &doc, nil
}

func decodeDecls(raw []jsonDecl) ([]ast.Decl, *diag.Error) {
	out := make([]ast.Decl, 0, len(raw))
	for i, jd := range raw {
		d, derr := decodeDecl(jd)
		if derr != nil {
			return nil, derr.WithPtr(diag.Ptr(fmt.Sprintf("/decls/%d", i)))
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeDecl(jd jsonDecl) (ast.Decl, *diag.Error) {
	kind := ast.DeclKind(jd.Decl)
	switch kind {
	case ast.DeclExport, ast.DeclDefn, ast.DeclDefAsync, ast.DeclExtern:
	default:
		return ast.Decl{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser",
			fmt.Sprintf("unknown declaration kind %q", jd.Decl))
	}
	if err := ensureNoReservedMarker(jd.Name); err != nil {
		return ast.Decl{}, diag.New(diag.Parse, diag.CodeBadListArity, "parser", err.Error())
	}
	if kind == ast.DeclExtern && len(jd.TypeParams) > 0 {
		return ast.Decl{}, diag.New(diag.Parse, diag.CodeGenericSyntaxNotAllowed, "parser",
			"extern declarations may not carry type_params (tapp is not allowed on extern)")
	}
	if kind == ast.DeclExport && len(jd.TypeParams) > 0 {
		return ast.Decl{}, diag.New(diag.Parse, diag.CodeGenericSyntaxNotAllowed, "parser",
			"export declarations may not carry type_params")
	}

	tps := make([]ast.TypeParam, 0, len(jd.TypeParams))
	for _, tp := range jd.TypeParams {
		b := ast.Bound(tp.Bound)
		switch b {
		case ast.BoundAny, ast.BoundBytesLike, ast.BoundNumLike, ast.BoundValue, ast.BoundHashable, ast.BoundOrderable:
		default:
			return ast.Decl{}, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser",
				fmt.Sprintf("unknown type parameter bound %q", tp.Bound))
		}
		tps = append(tps, ast.TypeParam{Name: tp.Name, Bound: b})
	}

	params := make([]ast.Param, 0, len(jd.Params))
	for _, p := range jd.Params {
		params = append(params, ast.Param{Name: p.Name, TypeRef: p.Type})
	}

	var body ast.Expr
	if len(jd.Body) > 0 {
		var derr *diag.Error
		body, derr = decodeExpr(jd.Body)
		if derr != nil {
			return ast.Decl{}, derr
		}
	} else if kind == ast.DeclDefn || kind == ast.DeclDefAsync {
		return ast.Decl{}, diag.New(diag.Parse, diag.CodeMissingField, "parser",
			fmt.Sprintf("declaration %q of kind %q requires a body", jd.Name, jd.Decl))
	}

	return ast.Decl{
		Kind:       kind,
		Name:       jd.Name,
		TypeParams: tps,
		Params:     params,
		ReturnType: jd.ReturnType,
		Body:       body,
		Ptr:        ast.Ptr(jd.Ptr),
	}, nil
}

func decodeExpr(raw json.RawMessage) (ast.Expr, *diag.Error) {
	if len(raw) == 0 {
		return nil, diag.New(diag.Parse, diag.CodeMissingField, "parser", "missing expression")
	}
	var je jsonExpr
	if err := json.Unmarshal(raw, &je); err != nil {
		return nil, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser", err.Error())
	}
	ptr := diag.Ptr(je.Ptr)
	switch je.Kind {
	case "int":
		if je.Value == nil {
			return nil, diag.New(diag.Parse, diag.CodeMissingField, "parser", "int expression missing value").WithPtr(ptr)
		}
		return &ast.Int{Value: *je.Value, Ptr: ast.Ptr(je.Ptr)}, nil
	case "ident":
		if je.Name == "" {
			return nil, diag.New(diag.Parse, diag.CodeMissingField, "parser", "ident expression missing name").WithPtr(ptr)
		}
		return &ast.Ident{Name: je.Name, Ptr: ast.Ptr(je.Ptr)}, nil
	case "list":
		if len(je.Items) == 0 {
			return nil, diag.New(diag.Parse, diag.CodeBadListArity, "parser", "list expression must have at least one item (the head)").WithPtr(ptr)
		}
		items := make([]ast.Expr, 0, len(je.Items))
		for i, raw := range je.Items {
			item, derr := decodeExpr(raw)
			if derr != nil {
				return nil, derr.WithPtr(diag.Ptr(fmt.Sprintf("%s/items/%d", je.Ptr, i)))
			}
			items = append(items, item)
		}
		return &ast.List{Items: items, Ptr: ast.Ptr(je.Ptr)}, nil
	default:
		return nil, diag.New(diag.Parse, diag.CodeMalformedDocument, "parser",
			fmt.Sprintf("unknown expression kind %q", je.Kind)).WithPtr(ptr)
	}
}

// validateModuleID enforces the symbol lexical rule: a module id must
// be a non-empty, slash-separated path of non-empty segments with no
// reserved mangle marker. The characters of a segment are not checked.
func validateModuleID(id string) error {
	if id == "" {
		return fmt.Errorf("module_id must not be empty")
	}
	if err := ensureNoReservedMarker(id); err != nil {
		return err
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == "" {
			return fmt.Errorf("module_id %q has an empty path segment", id)
		}
	}
	return nil
}
