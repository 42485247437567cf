package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	return New(toks).Parse()
}

func TestParseVarDeclAndExpression(t *testing.T) {
	program, err := parseSource(t, `var x = 1 + 2 * 3; print x;`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 2)

	decl, ok := program.Decls[0].(*ast.VarDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name.Lexeme)

	bin, ok := decl.Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op.Lexeme)

	_, ok = program.Decls[1].(*ast.PrintStmt)
	assert.True(t, ok)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program, err := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 1)

	outer, ok := program.Decls[0].(*ast.BlockStmt)
	require.True(t, ok, "desugared for-loop must be wrapped in a block")
	require.Len(t, outer.Decls, 2)

	_, ok = outer.Decls[0].(*ast.VarDeclStmt)
	assert.True(t, ok, "first statement must be the loop initializer")

	loop, ok := outer.Decls[1].(*ast.WhileStmt)
	require.True(t, ok, "second statement must be the desugared while loop")
	assert.NotNil(t, loop.Condition)
}

func TestParseClassWithSuperclassAndInitializer(t *testing.T) {
	program, err := parseSource(t, `
		class Base {}
		class Derived < Base {
			init(x) { this.x = x; }
		}
	`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 2)

	derived, ok := program.Decls[1].(*ast.ClassStmt)
	require.True(t, ok)
	require.NotNil(t, derived.Superclass)
	assert.Equal(t, "Base", derived.Superclass.Name.Lexeme)
	require.Len(t, derived.Methods, 1)
	assert.True(t, derived.Methods[0].IsInitializer)
}

func TestParseArrayLiteralIndexAndIndexAssignment(t *testing.T) {
	program, err := parseSource(t, `
		var a = [1, 2, 3];
		a[0] = 9;
		print a[1];
	`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 3)

	decl := program.Decls[0].(*ast.VarDeclStmt)
	arr, ok := decl.Initializer.(*ast.ArrayExpr)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)

	assignStmt := program.Decls[1].(*ast.ExpressionStmt)
	_, ok = assignStmt.Expr.(*ast.IndexSetExpr)
	assert.True(t, ok, "assignment into a[0] must parse as IndexSetExpr")

	printStmt := program.Decls[2].(*ast.PrintStmt)
	_, ok = printStmt.Expr.(*ast.IndexExpr)
	assert.True(t, ok, "a[1] read must parse as IndexExpr")
}

func TestParseSynchronizesPastMultipleErrors(t *testing.T) {
	_, err := parseSource(t, `
		var = ;
		print 1 +;
		var ok = 1;
	`)
	require.Error(t, err)

	merr, ok := asMultierrorForTest(err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(merr), 2, "both malformed statements must be reported, not just the first")
}

func asMultierrorForTest(err error) ([]error, bool) {
	type unwrapper interface{ WrappedErrors() []error }
	if u, ok := err.(unwrapper); ok {
		return u.WrappedErrors(), true
	}
	return nil, false
}

func TestParseInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	program, err := parseSource(t, `1 + 2 = 3;`)
	require.Error(t, err, "an invalid assignment target must still be reported")
	require.Len(t, program.Decls, 1, "parsing continues after the non-fatal error")
}
