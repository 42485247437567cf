// Package interp walks the resolved AST, maintaining the environment chain
// and performing dynamic dispatch for calls, field access, and operators.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType discriminates the Value sum type.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeFunction
	TypeClass
	TypeInstance
	TypeArray
)

// Value is the interpreter's dynamic value representation.
type Value interface {
	Type() ValueType
	String() string
}

// Nil is the language's single nil value.
type Nil struct{}

func (Nil) Type() ValueType { return TypeNil }
func (Nil) String() string  { return "Nil" }

// NilValue is the shared Nil instance; Nil carries no state so every
// caller can share one.
var NilValue = Nil{}

// Bool wraps a boolean.
type Bool struct{ V bool }

func (b Bool) Type() ValueType { return TypeBool }
func (b Bool) String() string  { return strconv.FormatBool(b.V) }

// Number wraps an IEEE-754 double, the language's only numeric type.
type Number struct{ V float64 }

func (n Number) Type() ValueType { return TypeNumber }

// String formats a Number in its shortest %g form: whole numbers carry no
// trailing ".0", and large or small magnitudes switch to exponent
// notation. Unlike the lexer's Token.Literal, no ".0" is ever appended.
func (n Number) String() string {
	return strconv.FormatFloat(n.V, 'g', -1, 64)
}

// Str wraps a string. Named Str, not String, to avoid colliding with the
// Value.String() method.
type Str struct{ V string }

func (s Str) Type() ValueType { return TypeString }
func (s Str) String() string  { return s.V }

// Array is a mutable, reference-shared sequence of Values. Its length is
// fixed when the literal is evaluated: index assignment past the end is an
// "Index out of bounds" error.
// Restored from original_source's array.rs/array_expr.rs — spec.md already
// lists Array as an optional Value and lists its error kinds (index out
// of bounds, non-integer index) but the distilled grammar dropped the
// literal/index syntax that produces them.
type Array struct {
	Elements []Value
}

func NewArray(elements []Value) *Array { return &Array{Elements: elements} }

func (a *Array) Type() ValueType { return TypeArray }
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// IsTruthy applies the Lox-standard truthiness policy chosen for the Open
// Question in spec.md section 9: nil and false are falsy, everything else
// is truthy. Applied uniformly to if/while/!/and/or.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return val.V
	default:
		return true
	}
}

// Equal implements the structural-equality rule from spec.md section 4.4:
// Number/String/Bool/Nil compare structurally; everything else (including
// cross-kind pairs) compares by reference identity, which for Go's
// interface equality on pointer-backed Function/Class/Instance values is
// exactly pointer identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.V == bv.V
	case Number:
		bv, ok := b.(Number)
		return ok && av.V == bv.V
	case Str:
		bv, ok := b.(Str)
		return ok && av.V == bv.V
	default:
		return a == b
	}
}

// TypeName returns a short lowercase name for v's dynamic kind. The
// evaluator's error messages and the str() builtin do not use it; str()
// returns Value.String().
func TypeName(v Value) string {
	switch v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case Str:
		return "string"
	case *Array:
		return "array"
	case *Function:
		return "function"
	case *Builtin:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return fmt.Sprintf("%T", v)
	}
}
