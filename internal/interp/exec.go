package interp

import (
	"fmt"

	"github.com/samdecook/treewalk/internal/ast"
)

// execStmt executes one statement in env and reports whether it (or a
// nested statement) executed a `return`: the (value, hasReturn, error)
// triple is the internal non-local-transfer mechanism spec.md section 9
// asks for in place of the source's error-typed "return" sentinel.
func (in *Interpreter) execStmt(s ast.Stmt, env *Environment) (Value, bool, error) {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evalExpr(st.Expr, env)
		return nil, false, err

	case *ast.PrintStmt:
		v, err := in.evalExpr(st.Expr, env)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintln(in.Stdout, v.String())
		return nil, false, nil

	case *ast.VarDeclStmt:
		var v Value = NilValue
		if st.Initializer != nil {
			var err error
			v, err = in.evalExpr(st.Initializer, env)
			if err != nil {
				return nil, false, err
			}
		}
		env.Define(st.Name.Lexeme, v)
		return nil, false, nil

	case *ast.BlockStmt:
		return in.execBlock(st.Decls, NewEnvironment(env))

	case *ast.IfStmt:
		cond, err := in.evalExpr(st.Condition, env)
		if err != nil {
			return nil, false, err
		}
		if IsTruthy(cond) {
			return in.execStmt(st.Then, env)
		} else if st.Else != nil {
			return in.execStmt(st.Else, env)
		}
		return nil, false, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evalExpr(st.Condition, env)
			if err != nil {
				return nil, false, err
			}
			if !IsTruthy(cond) {
				break
			}
			v, hasReturn, err := in.execStmt(st.Body, env)
			if err != nil || hasReturn {
				return v, hasReturn, err
			}
		}
		return nil, false, nil

	case *ast.FunctionStmt:
		fn := &Function{decl: st, closure: env, isInit: st.IsInitializer}
		env.Define(st.Name.Lexeme, fn)
		return nil, false, nil

	case *ast.ReturnStmt:
		if st.Value == nil {
			return NilValue, true, nil
		}
		v, err := in.evalExpr(st.Value, env)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case *ast.ClassStmt:
		return nil, false, in.execClass(st, env)

	default:
		return nil, false, runtimeErrorf(0, "interp: unhandled statement type %T", s)
	}
}

// execBlock runs decls in env (a freshly-pushed child frame for a real
// Block; the function-call environment for a function body) and returns
// as soon as one declaration reports a return or error.
func (in *Interpreter) execBlock(decls []ast.Stmt, env *Environment) (Value, bool, error) {
	for _, d := range decls {
		v, hasReturn, err := in.execStmt(d, env)
		if err != nil || hasReturn {
			return v, hasReturn, err
		}
	}
	return nil, false, nil
}

func (in *Interpreter) execClass(c *ast.ClassStmt, env *Environment) error {
	env.Define(c.Name.Lexeme, NilValue)

	var superclass *Class
	if c.Superclass != nil {
		superVal, err := in.lookUpVariable(env, c.Superclass.Name.Lexeme, c.Superclass.NodeID())
		if err != nil {
			return err
		}
		sc, ok := superVal.(*Class)
		if !ok {
			return runtimeErrorf(c.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc

		env = NewEnvironment(env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(c.Methods))
	for _, m := range c.Methods {
		methods[m.Name.Lexeme] = &Function{decl: m, closure: env, isInit: m.IsInitializer}
	}

	class := &Class{Name: c.Name.Lexeme, Superclass: superclass, Methods: methods}

	if c.Superclass != nil {
		// env here is the "super" scope; assigning into its parent puts
		// the finished class back where the name was first declared.
		env.parent.Define(c.Name.Lexeme, class)
	} else {
		env.Define(c.Name.Lexeme, class)
	}
	return nil
}
