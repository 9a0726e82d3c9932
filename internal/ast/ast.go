// Package ast defines the concrete syntax tree for a single x07AST
// module or entry document: exactly three expression variants (Int,
// Ident, List), plus the Module/Entry document shape. A Node-style
// interface (Position(), a File root holding declarations),
// generalised from an open surface grammar to this closed
// three-variant sum.
package ast

import (
	"fmt"
	"strings"
)

// Ptr is a JSON-Pointer-like path into the original source document,
// preserved across rewrites for diagnostics.
type Ptr string

// Expr is the base interface every expression variant implements.
type Expr interface {
	exprNode()
	Pointer() Ptr
	String() string
}

// Int is an integer literal.
type Int struct {
	Value int32
	Ptr   Ptr
}

func (*Int) exprNode()        {}
func (n *Int) Pointer() Ptr   { return n.Ptr }
func (n *Int) String() string { return fmt.Sprintf("%d", n.Value) }

// Ident is a bare identifier reference (variable, head, or operator).
type Ident struct {
	Name string
	Ptr  Ptr
}

func (*Ident) exprNode()        {}
func (n *Ident) Pointer() Ptr   { return n.Ptr }
func (n *Ident) String() string { return n.Name }

// List is a parenthesised form: `items[0]` is the head (an Ident
// naming an operator or callee), the rest are operands.
type List struct {
	Items []Expr
	Ptr   Ptr
}

func (*List) exprNode()      {}
func (n *List) Pointer() Ptr { return n.Ptr }
func (n *List) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the list's callee/operator identifier, and false if
// the list is empty or its first element is not an Ident.
func (n *List) Head() (string, bool) {
	if len(n.Items) == 0 {
		return "", false
	}
	id, ok := n.Items[0].(*Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// Args returns the list's operand expressions (everything after the
// head).
func (n *List) Args() []Expr {
	if len(n.Items) <= 1 {
		return nil
	}
	return n.Items[1:]
}
