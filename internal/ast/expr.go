package ast

import (
	"fmt"
	"strings"

	"github.com/samdecook/treewalk/internal/token"
)

func (*LiteralExpr) exprNode()   {}
func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*LogicExpr) exprNode()     {}
func (*GroupingExpr) exprNode()  {}
func (*VarExpr) exprNode()       {}
func (*AssignExpr) exprNode()    {}
func (*CallExpr) exprNode()      {}
func (*GetExpr) exprNode()       {}
func (*SetExpr) exprNode()       {}
func (*ThisExpr) exprNode()      {}
func (*SuperExpr) exprNode()     {}
func (*ArrayExpr) exprNode()     {}
func (*IndexExpr) exprNode()     {}
func (*IndexSetExpr) exprNode()  {}

// LiteralExpr evaluates a token payload: number, string, bool, or nil.
type LiteralExpr struct {
	Token token.Token
	// Value is the canonical text of the literal ("true", "false", "nil",
	// or the token's Literal for NUMBER/STRING).
	Value string
}

func (l *LiteralExpr) String() string { return l.Value }

// UnaryExpr is `-right` or `!right`.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
}

func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right) }

// BinaryExpr is any of the arithmetic/comparison/equality operators.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }

// LogicExpr is `and`/`or`, distinguished from BinaryExpr because it
// short-circuits.
type LogicExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (l *LogicExpr) String() string { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
}

func (g *GroupingExpr) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

// VarExpr reads a variable by name.
type VarExpr struct {
	id   int
	Name token.Token
}

// NewVarExpr constructs a VarExpr with a fresh node id.
func NewVarExpr(name token.Token) *VarExpr { return &VarExpr{id: newID(), Name: name} }

func (v *VarExpr) NodeID() int    { return v.id }
func (v *VarExpr) String() string { return v.Name.Lexeme }

// AssignExpr writes a variable by name.
type AssignExpr struct {
	id    int
	Name  token.Token
	Value Expr
}

// NewAssignExpr constructs an AssignExpr with a fresh node id.
func NewAssignExpr(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{id: newID(), Name: name, Value: value}
}

func (a *AssignExpr) NodeID() int    { return a.id }
func (a *AssignExpr) String() string { return fmt.Sprintf("%s = %s", a.Name.Lexeme, a.Value) }

// CallExpr is a function/method/class call.
type CallExpr struct {
	Callee Expr
	Paren  token.Token // closing ")" token, for arity-error line numbers
	Args   []Expr
}

func (c *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString(c.Callee.String())
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// GetExpr reads a field or bound method off an instance.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

func (g *GetExpr) String() string { return fmt.Sprintf("%s.%s", g.Object, g.Name.Lexeme) }

// SetExpr writes a field on an instance.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (s *SetExpr) String() string { return fmt.Sprintf("%s.%s = %s", s.Object, s.Name.Lexeme, s.Value) }

// ThisExpr references the receiver inside a method body.
type ThisExpr struct {
	id      int
	Keyword token.Token
}

// NewThisExpr constructs a ThisExpr with a fresh node id.
func NewThisExpr(keyword token.Token) *ThisExpr { return &ThisExpr{id: newID(), Keyword: keyword} }

func (t *ThisExpr) NodeID() int    { return t.id }
func (t *ThisExpr) String() string { return "this" }

// SuperExpr references a superclass method: `super.method`.
type SuperExpr struct {
	id      int
	Keyword token.Token
	Method  token.Token
}

// NewSuperExpr constructs a SuperExpr with a fresh node id.
func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{id: newID(), Keyword: keyword, Method: method}
}

func (s *SuperExpr) NodeID() int    { return s.id }
func (s *SuperExpr) String() string { return fmt.Sprintf("super.%s", s.Method.Lexeme) }

// ArrayExpr is an array literal: `[e1, e2, ...]`.
type ArrayExpr struct {
	Elements []Expr
}

func (a *ArrayExpr) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// IndexExpr reads an element: `callee[index]`.
type IndexExpr struct {
	id      int
	Callee  Expr
	Bracket token.Token
	Index   Expr
}

// NewIndexExpr constructs an IndexExpr with a fresh node id.
func NewIndexExpr(callee Expr, bracket token.Token, index Expr) *IndexExpr {
	return &IndexExpr{id: newID(), Callee: callee, Bracket: bracket, Index: index}
}

func (i *IndexExpr) NodeID() int    { return i.id }
func (i *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", i.Callee, i.Index) }

// IndexSetExpr writes an element: `callee[index] = value`.
type IndexSetExpr struct {
	id      int
	Callee  Expr
	Bracket token.Token
	Index   Expr
	Value   Expr
}

// NewIndexSetExpr constructs an IndexSetExpr with a fresh node id.
func NewIndexSetExpr(callee Expr, bracket token.Token, index, value Expr) *IndexSetExpr {
	return &IndexSetExpr{id: newID(), Callee: callee, Bracket: bracket, Index: index, Value: value}
}

func (i *IndexSetExpr) NodeID() int { return i.id }
func (i *IndexSetExpr) String() string {
	return fmt.Sprintf("%s[%s] = %s", i.Callee, i.Index, i.Value)
}
