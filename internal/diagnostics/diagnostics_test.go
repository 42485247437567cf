package diagnostics

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"

	"github.com/samdecook/treewalk/internal/interp"
	"github.com/samdecook/treewalk/internal/parser"
	"github.com/samdecook/treewalk/internal/resolver"
)

func init() {
	// Force fatih/color to emit plain text regardless of the test
	// runner's terminal, so assertions don't have to match escape codes.
	color.NoColor = true
}

func TestPrintStaticErrorFormatsResolverError(t *testing.T) {
	var buf bytes.Buffer
	err := &resolver.StaticError{Line: 3, Where: "at 'x'", Message: "Already a variable with this name in this scope."}
	PrintStaticError(&buf, err)
	assert.Equal(t, "[line 3] Error at 'x', message: Already a variable with this name in this scope.\n", buf.String())
}

func TestPrintStaticErrorUnwrapsMultierror(t *testing.T) {
	var buf bytes.Buffer
	e1 := &parser.ParseError{Line: 1, Where: "at end", Message: "Expect expression."}
	e2 := &parser.ParseError{Line: 2, Where: "at ';'", Message: "Expect ')' after arguments."}

	merr := &multierror.Error{Errors: []error{e1, e2}}

	PrintStaticError(&buf, merr)
	assert.Equal(t, "[line 1] Error at end, message: Expect expression.\n"+
		"[line 2] Error at ';', message: Expect ')' after arguments.\n", buf.String())
}

func TestPrintRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	PrintRuntimeError(&buf, &interp.RuntimeError{Line: 7, Message: "Undefined property 'x'."})
	assert.Equal(t, "[line 7] Error at end, message: Undefined property 'x'.\n", buf.String())
}
