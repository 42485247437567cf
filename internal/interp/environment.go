package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Environment is a lexical scope frame: a name->value map plus a parent
// link. The global environment has a nil parent and is seeded with
// builtins.
//
// The frame map is a *swiss.Map rather than a builtin Go map (grounded on
// mna-nenuphar's lang/machine/map.go use of the same package for its own
// Value-keyed maps): open addressing avoids the builtin map's
// growth-triggered rehash pauses on the hot path of repeated variable
// lookups in a tree-walking evaluator.
type Environment struct {
	parent *Environment
	values *swiss.Map[string, Value]
}

// NewEnvironment returns a fresh frame whose parent is parent (nil for the
// global scope).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: swiss.NewMap[string, Value](8)}
}

// Define binds name unconditionally in the current frame, overwriting any
// existing binding. Re-running a var statement (e.g. in a REPL) is not an
// error at the global scope; local re-declaration is caught earlier by the
// resolver.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get reads name, searching this frame then each parent in turn.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values.Get(name); ok {
			return v, nil
		}
	}
	return nil, &RuntimeError{Message: fmt.Sprintf("Undefined variable '%s'.", name)}
}

// Assign writes name in the nearest frame (this one or an ancestor) that
// already defines it.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values.Get(name); ok {
			env.values.Put(name, value)
			return nil
		}
	}
	return &RuntimeError{Message: fmt.Sprintf("Undefined variable '%s'.", name)}
}

// ancestor walks exactly distance parent links up from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from exactly the distance-th ancestor, with no further
// fallback — the resolver guarantees the name exists there.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	v, ok := e.ancestor(distance).values.Get(name)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("Undefined variable '%s'.", name)}
	}
	return v, nil
}

// AssignAt writes name into exactly the distance-th ancestor.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values.Put(name, value)
}
