package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/resolver"
)

// Interpreter holds the single mutable pieces of interpreter state —
// the live environment chain and the resolver's locals table — as
// explicit fields rather than the package-level singletons spec.md
// section 9 flags as needing rearchitecture.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals

	Stdout io.Writer
	Stdin  io.Reader
	Log    *logrus.Logger

	stdinReader *bufio.Reader // lazily built over Stdin, shared across input() calls
}

// New returns an Interpreter with a fresh global environment seeded with
// builtins, writing print output to stdout and reading input() from
// stdin.
func New() *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals: globals,
		env:     globals,
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,
		Log:     logrus.StandardLogger(),
	}
	registerBuiltins(in)
	return in
}

// Run executes every top-level declaration of program in order, using
// locals to resolve variable references at the distance the resolver
// computed. It stops and returns the first RuntimeError.
func (in *Interpreter) Run(program *ast.Program, locals resolver.Locals) error {
	in.locals = locals
	for _, decl := range program.Decls {
		if _, _, err := in.execStmt(decl, in.env); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable resolves a Var/This/Super read using the locals table
// when the node has an entry, falling back to the global environment
// otherwise — spec.md section 4.3's lookup rule.
func (in *Interpreter) lookUpVariable(env *Environment, name string, nodeID int) (Value, error) {
	if distance, ok := in.locals[nodeID]; ok {
		return env.GetAt(distance, name)
	}
	return in.globals.Get(name)
}
