package interp

import (
	"strconv"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/token"
)

// evalExpr dispatches on the AST expression's concrete type, the Go
// substitute (spec.md section 9) for the source's visitor-trait dispatch:
// a type switch over the closed set of expression variants.
func (in *Interpreter) evalExpr(e ast.Expr, env *Environment) (Value, error) {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return in.evalLiteral(ex)

	case *ast.GroupingExpr:
		return in.evalExpr(ex.Inner, env)

	case *ast.UnaryExpr:
		return in.evalUnary(ex, env)

	case *ast.BinaryExpr:
		return in.evalBinary(ex, env)

	case *ast.LogicExpr:
		return in.evalLogic(ex, env)

	case *ast.VarExpr:
		return in.lookUpVariable(env, ex.Name.Lexeme, ex.NodeID())

	case *ast.AssignExpr:
		val, err := in.evalExpr(ex.Value, env)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[ex.NodeID()]; ok {
			env.AssignAt(distance, ex.Name.Lexeme, val)
		} else if err := in.globals.Assign(ex.Name.Lexeme, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.CallExpr:
		return in.evalCall(ex, env)

	case *ast.GetExpr:
		return in.evalGet(ex, env)

	case *ast.SetExpr:
		return in.evalSet(ex, env)

	case *ast.ThisExpr:
		return in.lookUpVariable(env, "this", ex.NodeID())

	case *ast.SuperExpr:
		return in.evalSuper(ex, env)

	case *ast.ArrayExpr:
		elements := make([]Value, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := in.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return NewArray(elements), nil

	case *ast.IndexExpr:
		return in.evalIndex(ex, env)

	case *ast.IndexSetExpr:
		return in.evalIndexSet(ex, env)

	default:
		return nil, runtimeErrorf(0, "interp: unhandled expression type %T", e)
	}
}

func (in *Interpreter) evalLiteral(l *ast.LiteralExpr) (Value, error) {
	switch l.Token.Type {
	case token.True:
		return Bool{true}, nil
	case token.False:
		return Bool{false}, nil
	case token.Nil:
		return NilValue, nil
	case token.String:
		return Str{l.Token.Literal}, nil
	case token.Number:
		// Parse the raw lexeme, not Token.Literal: Literal is the
		// scanner's display-normalized form (always carries a decimal
		// point, switching to exponent notation for large magnitudes
		// per %g), and re-parsing that string can fail or round
		// differently than parsing the source text directly.
		n, err := strconv.ParseFloat(l.Token.Lexeme, 64)
		if err != nil {
			return nil, runtimeErrorf(l.Token.Line, "interp: invalid number literal %q", l.Token.Lexeme)
		}
		return Number{n}, nil
	default:
		return nil, runtimeErrorf(l.Token.Line, "interp: unhandled literal kind %v", l.Token.Type)
	}
}

func (in *Interpreter) evalUnary(u *ast.UnaryExpr, env *Environment) (Value, error) {
	right, err := in.evalExpr(u.Right, env)
	if err != nil {
		return nil, err
	}
	switch u.Op.Type {
	case token.Bang:
		return Bool{!IsTruthy(right)}, nil
	case token.Minus:
		n, ok := right.(Number)
		if !ok {
			return nil, runtimeErrorf(u.Op.Line, "Operand must be a number.")
		}
		return Number{-n.V}, nil
	default:
		return nil, runtimeErrorf(u.Op.Line, "interp: unhandled unary operator %v", u.Op.Type)
	}
}

func (in *Interpreter) evalBinary(b *ast.BinaryExpr, env *Environment) (Value, error) {
	left, err := in.evalExpr(b.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(b.Right, env)
	if err != nil {
		return nil, err
	}

	switch b.Op.Type {
	case token.Plus:
		if ls, ok := left.(Str); ok {
			if rs, ok := right.(Str); ok {
				return Str{ls.V + rs.V}, nil
			}
		}
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return Number{ln.V + rn.V}, nil
			}
		}
		return nil, runtimeErrorf(b.Op.Line, "Operands must be two numbers or two strings.")

	case token.Minus:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Number{ln - rn}, nil

	case token.Star:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Number{ln * rn}, nil

	case token.Slash:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Number{ln / rn}, nil

	case token.Greater:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Bool{ln > rn}, nil

	case token.GreaterEqual:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Bool{ln >= rn}, nil

	case token.Less:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Bool{ln < rn}, nil

	case token.LessEqual:
		ln, rn, err := numberPair(left, right, b.Op.Line)
		if err != nil {
			return nil, err
		}
		return Bool{ln <= rn}, nil

	case token.EqualEqual:
		return Bool{Equal(left, right)}, nil

	case token.BangEqual:
		return Bool{!Equal(left, right)}, nil

	default:
		return nil, runtimeErrorf(b.Op.Line, "interp: unhandled binary operator %v", b.Op.Type)
	}
}

func numberPair(left, right Value, line int) (float64, float64, error) {
	ln, ok := left.(Number)
	if !ok {
		return 0, 0, runtimeErrorf(line, "Operands must be numbers.")
	}
	rn, ok := right.(Number)
	if !ok {
		return 0, 0, runtimeErrorf(line, "Operands must be numbers.")
	}
	return ln.V, rn.V, nil
}

func (in *Interpreter) evalLogic(l *ast.LogicExpr, env *Environment) (Value, error) {
	left, err := in.evalExpr(l.Left, env)
	if err != nil {
		return nil, err
	}
	if l.Op.Type == token.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return in.evalExpr(l.Right, env)
}

func (in *Interpreter) evalCall(c *ast.CallExpr, env *Environment) (Value, error) {
	callee, err := in.evalExpr(c.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := in.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(c.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(c.Paren.Line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(g *ast.GetExpr, env *Environment) (Value, error) {
	obj, err := in.evalExpr(g.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorf(g.Name.Line, "Only instances have properties.")
	}
	return instance.Get(g.Name.Lexeme)
}

func (in *Interpreter) evalSet(s *ast.SetExpr, env *Environment) (Value, error) {
	obj, err := in.evalExpr(s.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorf(s.Name.Line, "Only instances have fields.")
	}
	val, err := in.evalExpr(s.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(s.Name.Lexeme, val)
	return val, nil
}

func (in *Interpreter) evalSuper(s *ast.SuperExpr, env *Environment) (Value, error) {
	distance := in.locals[s.NodeID()]
	superVal, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, err
	}
	super := superVal.(*Class)

	thisVal, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, err
	}
	this := thisVal.(*Instance)

	method := super.FindMethod(s.Method.Lexeme)
	if method == nil {
		return nil, runtimeErrorf(s.Method.Line, "Undefined property '%s'.", s.Method.Lexeme)
	}
	return method.bind(this), nil
}

func (in *Interpreter) evalIndex(ix *ast.IndexExpr, env *Environment) (Value, error) {
	callee, err := in.evalExpr(ix.Callee, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := in.evalExpr(ix.Index, env)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(Number)
	if !ok {
		return nil, runtimeErrorf(ix.Bracket.Line, "Index must be a number.")
	}

	switch c := callee.(type) {
	case *Array:
		i, err := checkIndex(idxNum.V, len(c.Elements), ix.Bracket.Line)
		if err != nil {
			return nil, err
		}
		return c.Elements[i], nil
	case Str:
		i, err := checkIndex(idxNum.V, len(c.V), ix.Bracket.Line)
		if err != nil {
			return nil, err
		}
		return Str{string(c.V[i])}, nil
	default:
		return nil, runtimeErrorf(ix.Bracket.Line, "Can't index non-array value.")
	}
}

func (in *Interpreter) evalIndexSet(ix *ast.IndexSetExpr, env *Environment) (Value, error) {
	callee, err := in.evalExpr(ix.Callee, env)
	if err != nil {
		return nil, err
	}
	arr, ok := callee.(*Array)
	if !ok {
		return nil, runtimeErrorf(ix.Bracket.Line, "Can't index non-array value.")
	}
	idxVal, err := in.evalExpr(ix.Index, env)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(Number)
	if !ok {
		return nil, runtimeErrorf(ix.Bracket.Line, "Index must be a number.")
	}
	i, err := checkIndex(idxNum.V, len(arr.Elements), ix.Bracket.Line)
	if err != nil {
		return nil, err
	}
	val, err := in.evalExpr(ix.Value, env)
	if err != nil {
		return nil, err
	}
	arr.Elements[i] = val
	return val, nil
}

// checkIndex enforces original_source's array-index rules (restored per
// SPEC_FULL.md section 3): the index must be a non-negative integer and
// in bounds.
func checkIndex(idx float64, length int, line int) (int, error) {
	if idx != float64(int(idx)) || idx < 0 {
		return 0, runtimeErrorf(line, "Index must be a non-negative integer.")
	}
	i := int(idx)
	if i >= length {
		return 0, runtimeErrorf(line, "Index out of bounds.")
	}
	return i, nil
}
