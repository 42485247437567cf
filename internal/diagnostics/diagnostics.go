// Package diagnostics renders static and runtime errors into the single
// diagnostic line format spec.md section 6 specifies:
//
//	[line N] Error <loc>, message: <msg>
//
// where <loc> is "at end", "at '<lexeme>'", or a free-form token lexeme.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/samdecook/treewalk/internal/interp"
	"github.com/samdecook/treewalk/internal/parser"
	"github.com/samdecook/treewalk/internal/resolver"
)

// Exit codes, adopted from original_source/src/error.rs since spec.md
// leaves the exact codes unspecified beyond "non-zero" (SPEC_FULL.md
// section 7).
const (
	ExitOK      = 0
	ExitStatic  = 65
	ExitRuntime = 70
)

// staticLine formats one static (parse/resolve) error.
func staticLine(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error %s, message: %s", line, where, message)
}

// PrintStaticError writes err as one or more static-error diagnostic
// lines to w, colored yellow when w is a color-capable terminal.
//
// A *multierror.Error from the parser is unwrapped to print one line per
// constituent ParseError (SPEC_FULL.md section 4.1); any other error
// (a single *resolver.StaticError, which halts on first violation per
// spec.md section 4.2) prints as one line.
func PrintStaticError(w io.Writer, err error) {
	yellow := color.New(color.FgYellow)

	var merr *multierror.Error
	if asMultierror(err, &merr) {
		for _, e := range merr.Errors {
			yellow.Fprintln(w, lineFor(e))
		}
		return
	}
	yellow.Fprintln(w, lineFor(err))
}

func asMultierror(err error, out **multierror.Error) bool {
	m, ok := err.(*multierror.Error)
	if ok {
		*out = m
	}
	return ok
}

func lineFor(err error) string {
	switch e := err.(type) {
	case *parser.ParseError:
		return staticLine(e.Line, e.Where, e.Message)
	case *resolver.StaticError:
		return staticLine(e.Line, e.Where, e.Message)
	default:
		return staticLine(0, "at end", err.Error())
	}
}

// PrintRuntimeError writes a RuntimeError as one diagnostic line to w,
// colored red when w is a color-capable terminal.
func PrintRuntimeError(w io.Writer, err *interp.RuntimeError) {
	red := color.New(color.FgRed)
	red.Fprintln(w, staticLine(err.Line, "at end", err.Message))
}
