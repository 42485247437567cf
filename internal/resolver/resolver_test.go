package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/lexer"
	"github.com/samdecook/treewalk/internal/parser"
)

func resolveSource(t *testing.T, src string) (*ast.Program, Locals, error) {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	program, err := parser.New(toks).Parse()
	require.NoError(t, err)
	locals, err := Resolve(program)
	return program, locals, err
}

func TestResolveBindsLocalAtCorrectDistance(t *testing.T) {
	program, locals, err := resolveSource(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
	`)
	require.NoError(t, err)

	block := program.Decls[1].(*ast.BlockStmt)
	printStmt := block.Decls[1].(*ast.PrintStmt)
	varExpr := printStmt.Expr.(*ast.VarExpr)

	distance, ok := locals[varExpr.NodeID()]
	require.True(t, ok, "the inner 'a' must resolve to a local, not fall through to globals")
	assert.Equal(t, 0, distance)
}

func TestResolveGlobalIsNotInLocalsTable(t *testing.T) {
	_, locals, err := resolveSource(t, `
		var a = "global";
		print a;
	`)
	require.NoError(t, err)
	assert.Empty(t, locals, "a bare global reference has no scope distance to record")
}

func TestResolveSelfReferentialInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	require.Error(t, err)
	serr, ok := err.(*StaticError)
	require.True(t, ok)
	assert.Contains(t, serr.Message, "own initializer")
}

func TestResolveRedeclarationInSameScopeIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "Already a variable")
}

func TestResolveReturnOutsideFunctionIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `return 1;`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "top-level code")
}

func TestResolveValueReturnFromInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `
		class C {
			init() { return 1; }
		}
	`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "initializer")
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `print this;`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "'this' outside of a class")
}

func TestResolveSuperWithoutSuperclassIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `
		class C {
			m() { return super.m(); }
		}
	`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "no superclass")
}

func TestResolveClassInheritingFromItselfIsAnError(t *testing.T) {
	_, _, err := resolveSource(t, `class C < C {}`)
	require.Error(t, err)
	serr := err.(*StaticError)
	assert.Contains(t, serr.Message, "inherit from itself")
}
