package interp

import (
	"fmt"

	"github.com/samdecook/treewalk/internal/ast"
)

// Callable is the invocation protocol shared by user functions, builtins,
// and class construction.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method value: a FunctionStmt
// paired with the environment captured at the point the value was
// produced (its closure), per spec.md section 3.
type Function struct {
	decl    *ast.FunctionStmt
	closure *Environment
	isInit  bool
}

func (f *Function) Type() ValueType { return TypeFunction }
func (f *Function) String() string {
	var params string
	for i, p := range f.decl.Params {
		if i > 0 {
			params += ", "
		}
		params += p.Lexeme
	}
	return fmt.Sprintf("<fn %s(%s)>", f.decl.Name.Lexeme, params)
}

func (f *Function) Arity() int { return len(f.decl.Params) }

// bind returns a new Function whose closure additionally defines `this`,
// used when a method is looked up off an instance (spec.md section 4.4,
// Get/Super).
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInit: f.isInit}
}

// Call executes the function body in a fresh environment whose parent is
// the closure, per spec.md section 4.4's "User function" rule.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	ret, hasReturn, err := in.execBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInit {
		// spec.md section 4.4: an initializer's return value is always
		// the bound `this`, regardless of any `return;` inside the body.
		return f.closure.Get("this")
	}
	if hasReturn {
		return ret, nil
	}
	return NilValue, nil
}

// Builtin is a host function registered in the global environment at
// startup (clock, str, len, num, input).
type Builtin struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (b *Builtin) Type() ValueType              { return TypeFunction }
func (b *Builtin) String() string                { return "<builtin fn>" }
func (b *Builtin) Arity() int                    { return b.arity }
func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) { return b.fn(in, args) }

// Class is a class descriptor: name, method table, and optional
// superclass, per spec.md section 3.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() ValueType { return TypeClass }
func (c *Class) String() string  { return c.Name }

// FindMethod walks this class then its superclass chain, returning the
// earliest-defined override (spec.md section 8's testable property).
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the initializer's arity, or 0 if the class has no init.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or an ancestor)
// defines init, binds and invokes it before returning the instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live object: an immutable class pointer and a
// monotonically-growing field map, per spec.md section 3's invariants.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (i *Instance) Type() ValueType { return TypeInstance }
func (i *Instance) String() string  { return fmt.Sprintf("<instance of %s>", i.class.Name) }

// Get reads a field first, then a bound method, per spec.md section 4.4's
// Get rule.
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.fields[name]; ok {
		return v, nil
	}
	if method := i.class.FindMethod(name); method != nil {
		return method.bind(i), nil
	}
	return nil, &RuntimeError{Message: fmt.Sprintf("Undefined property '%s'.", name)}
}

// Set overwrites (or creates) a field. Fields are never deleted.
func (i *Instance) Set(name string, value Value) {
	i.fields[name] = value
}
