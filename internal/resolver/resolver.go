// Package resolver performs the static pre-execution pass described in
// spec.md section 4.2: it binds every variable-bearing expression to a
// lexical scope distance and enforces the language's static rules.
package resolver

import (
	"fmt"

	"github.com/samdecook/treewalk/internal/ast"
)

// functionType tags the kind of function a Return/This/Super rule needs to
// know it's nested in.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tags whether the current class (if any) has a superclass.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Locals maps a variable-bearing expression's stable node id to the scope
// distance the resolver computed for it — spec.md's "locals side table",
// keyed by ast.Identified.NodeID() rather than pointer identity (spec.md
// section 9).
type Locals map[int]int

// StaticError is a single static-analysis violation: a re-declaration, a
// this/super/return misuse, or an inheritance cycle.
type StaticError struct {
	Line    int
	Where   string
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// scope maps a name to whether its declaration has finished (declare sets
// false, define sets true).
type scope map[string]bool

// Resolver walks a parsed Program once, producing a Locals table. The
// walk halts on the first static error, per spec.md section 4.2 (unlike
// the parser, the resolver has no synchronization concept).
type Resolver struct {
	locals    Locals
	scopes    []scope
	fnType    functionType
	classType classType
}

// New returns a Resolver ready to walk a program.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve walks every top-level declaration in order and returns the
// completed Locals table, or the first static error encountered.
func Resolve(program *ast.Program) (Locals, error) {
	r := New()
	for _, decl := range program.Decls {
		if err := r.resolveStmt(decl); err != nil {
			return nil, err
		}
	}
	return r.locals, nil
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name string, line int) error {
	if len(r.scopes) == 0 {
		return nil
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name]; ok {
		return &StaticError{Line: line, Where: fmt.Sprintf("at '%s'", name),
			Message: "Already a variable with this name in this scope."}
	}
	s[name] = false
	return nil
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal records the scope distance for expr under key id if name is
// found in some enclosing scope; globals (no enclosing scope defines the
// name) are left out of the table entirely, per spec.md section 4.3.
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
}
