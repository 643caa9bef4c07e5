// Package syntax defines the parse tree of color expressions and a parser
// producing it.
//
// The grammar is small:
//
//	list    = expr { "," expr } .
//	expr    = term { ("+" | "-") term } .
//	term    = postfix { ("*" | "/") postfix } .
//	postfix = primary { "." ident } .
//	primary = number | ident [ "(" [ expr { "," expr } ] ")" ] | "(" expr ")" .
//
// Node kinds form a closed set: every Expr is one of *Number, *Ident,
// *Member, *Call, *Paren or *Binary. Consumers switch on the concrete type.
package syntax

import (
	"fmt"
	"strings"
)

// Expr is a node of the parse tree.
type Expr interface {
	// Pos returns the byte offset of the node in the source.
	Pos() int

	exprNode()
}

// Number is a numeric literal.
type Number struct {
	At   int
	Text string
}

// Ident is a bare identifier: a source name or a function name.
type Ident struct {
	At   int
	Name string
}

// Member is a member access X.Name: a swizzle or function-call sugar.
type Member struct {
	X      Expr
	Name   string
	NameAt int
}

// Call is a function call Func(Args...).
type Call struct {
	At   int
	Func string
	Args []Expr
}

// Paren is a parenthesized expression.
type Paren struct {
	At int
	X  Expr
}

// Binary is an arithmetic operation X Op Y.
type Binary struct {
	X    Expr
	Op   Op
	OpAt int
	Y    Expr
}

// List is the top-level comma-separated expression list.
type List struct {
	Items []Expr
}

func (n *Number) Pos() int { return n.At }
func (n *Ident) Pos() int  { return n.At }
func (n *Member) Pos() int { return n.NameAt }
func (n *Call) Pos() int   { return n.At }
func (n *Paren) Pos() int  { return n.At }
func (n *Binary) Pos() int { return n.OpAt }

func (*Number) exprNode() {}
func (*Ident) exprNode()  {}
func (*Member) exprNode() {}
func (*Call) exprNode()   {}
func (*Paren) exprNode()  {}
func (*Binary) exprNode() {}

// Op is an arithmetic operator.
type Op byte

// Operators.
const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
)

func (o Op) String() string { return string(rune(o)) }

// Multiplicative reports whether o is * or /.
func (o Op) Multiplicative() bool { return o == Mul || o == Div }

// Format renders a tree in a fully parenthesized debug form, e.g.
// "(a.r * 2)". It is meant for tests and diagnostics.
func Format(e Expr) string {
	var b strings.Builder
	format(&b, e)
	return b.String()
}

func format(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Number:
		b.WriteString(n.Text)
	case *Ident:
		b.WriteString(n.Name)
	case *Member:
		format(b, n.X)
		b.WriteByte('.')
		b.WriteString(n.Name)
	case *Call:
		b.WriteString(n.Func)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, a)
		}
		b.WriteByte(')')
	case *Paren:
		b.WriteString("[")
		format(b, n.X)
		b.WriteString("]")
	case *Binary:
		b.WriteByte('(')
		format(b, n.X)
		fmt.Fprintf(b, " %s ", n.Op)
		format(b, n.Y)
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
