package resolver

import (
	"fmt"

	"github.com/samdecook/treewalk/internal/ast"
)

func (r *Resolver) resolveStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		return r.resolveExpr(st.Expr)

	case *ast.PrintStmt:
		return r.resolveExpr(st.Expr)

	case *ast.VarDeclStmt:
		if err := r.declare(st.Name.Lexeme, st.Name.Line); err != nil {
			return err
		}
		if st.Initializer != nil {
			if err := r.resolveExpr(st.Initializer); err != nil {
				return err
			}
		}
		r.define(st.Name.Lexeme)
		return nil

	case *ast.BlockStmt:
		r.beginScope()
		defer r.endScope()
		for _, d := range st.Decls {
			if err := r.resolveStmt(d); err != nil {
				return err
			}
		}
		return nil

	case *ast.IfStmt:
		if err := r.resolveExpr(st.Condition); err != nil {
			return err
		}
		if err := r.resolveStmt(st.Then); err != nil {
			return err
		}
		if st.Else != nil {
			return r.resolveStmt(st.Else)
		}
		return nil

	case *ast.WhileStmt:
		if err := r.resolveExpr(st.Condition); err != nil {
			return err
		}
		return r.resolveStmt(st.Body)

	case *ast.FunctionStmt:
		if err := r.declare(st.Name.Lexeme, st.Name.Line); err != nil {
			return err
		}
		r.define(st.Name.Lexeme)
		fnType := fnFunction
		if st.IsInitializer {
			fnType = fnInitializer
		}
		return r.resolveFunction(st, fnType)

	case *ast.ReturnStmt:
		if r.fnType == fnNone {
			return &StaticError{Line: st.Keyword.Line, Where: "at 'return'",
				Message: "Can't return from top-level code."}
		}
		if st.Value != nil {
			if r.fnType == fnInitializer {
				return &StaticError{Line: st.Keyword.Line, Where: "at 'return'",
					Message: "Can't return a value from an initializer."}
			}
			return r.resolveExpr(st.Value)
		}
		return nil

	case *ast.ClassStmt:
		return r.resolveClass(st)

	default:
		return fmt.Errorf("resolver: unhandled statement type %T", s)
	}
}

func (r *Resolver) resolveFunction(fd *ast.FunctionStmt, fnType functionType) error {
	enclosing := r.fnType
	r.fnType = fnType
	defer func() { r.fnType = enclosing }()

	r.beginScope()
	defer r.endScope()
	for _, p := range fd.Params {
		if err := r.declare(p.Lexeme, p.Line); err != nil {
			return err
		}
		r.define(p.Lexeme)
	}
	for _, stmt := range fd.Body {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) error {
	enclosingClass := r.classType
	r.classType = classClass
	defer func() { r.classType = enclosingClass }()

	if err := r.declare(c.Name.Lexeme, c.Name.Line); err != nil {
		return err
	}
	r.define(c.Name.Lexeme)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			return &StaticError{Line: c.Superclass.Name.Line, Where: fmt.Sprintf("at '%s'", c.Name.Lexeme),
				Message: "A class can't inherit from itself."}
		}
		r.classType = classSubclass
		if err := r.resolveExpr(c.Superclass); err != nil {
			return err
		}
		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		fnType := fnMethod
		if method.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		if err := r.resolveFunction(method, fnType); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveExpr(e ast.Expr) error {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return nil

	case *ast.GroupingExpr:
		return r.resolveExpr(ex.Inner)

	case *ast.UnaryExpr:
		return r.resolveExpr(ex.Right)

	case *ast.BinaryExpr:
		if err := r.resolveExpr(ex.Left); err != nil {
			return err
		}
		return r.resolveExpr(ex.Right)

	case *ast.LogicExpr:
		if err := r.resolveExpr(ex.Left); err != nil {
			return err
		}
		return r.resolveExpr(ex.Right)

	case *ast.VarExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; declared && !defined {
				return &StaticError{Line: ex.Name.Line, Where: fmt.Sprintf("at '%s'", ex.Name.Lexeme),
					Message: "Can't read local variable in its own initializer."}
			}
		}
		r.resolveLocal(ex.NodeID(), ex.Name.Lexeme)
		return nil

	case *ast.AssignExpr:
		if err := r.resolveExpr(ex.Value); err != nil {
			return err
		}
		r.resolveLocal(ex.NodeID(), ex.Name.Lexeme)
		return nil

	case *ast.CallExpr:
		if err := r.resolveExpr(ex.Callee); err != nil {
			return err
		}
		for _, a := range ex.Args {
			if err := r.resolveExpr(a); err != nil {
				return err
			}
		}
		return nil

	case *ast.GetExpr:
		return r.resolveExpr(ex.Object)

	case *ast.SetExpr:
		if err := r.resolveExpr(ex.Value); err != nil {
			return err
		}
		return r.resolveExpr(ex.Object)

	case *ast.ThisExpr:
		if r.classType == classNone {
			return &StaticError{Line: ex.Keyword.Line, Where: "at 'this'",
				Message: "Can't use 'this' outside of a class."}
		}
		r.resolveLocal(ex.NodeID(), "this")
		return nil

	case *ast.SuperExpr:
		if r.classType == classNone {
			return &StaticError{Line: ex.Keyword.Line, Where: "at 'super'",
				Message: "Can't use 'super' outside of a class."}
		}
		if r.classType != classSubclass {
			return &StaticError{Line: ex.Keyword.Line, Where: "at 'super'",
				Message: "Can't use 'super' in a class with no superclass."}
		}
		r.resolveLocal(ex.NodeID(), "super")
		return nil

	case *ast.ArrayExpr:
		for _, el := range ex.Elements {
			if err := r.resolveExpr(el); err != nil {
				return err
			}
		}
		return nil

	case *ast.IndexExpr:
		if err := r.resolveExpr(ex.Callee); err != nil {
			return err
		}
		return r.resolveExpr(ex.Index)

	case *ast.IndexSetExpr:
		if err := r.resolveExpr(ex.Value); err != nil {
			return err
		}
		if err := r.resolveExpr(ex.Callee); err != nil {
			return err
		}
		return r.resolveExpr(ex.Index)

	default:
		return fmt.Errorf("resolver: unhandled expression type %T", e)
	}
}
