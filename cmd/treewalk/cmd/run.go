package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/samdecook/treewalk/internal/diagnostics"
	"github.com/samdecook/treewalk/internal/interp"
	"github.com/samdecook/treewalk/internal/lexer"
	"github.com/samdecook/treewalk/internal/parser"
	"github.com/samdecook/treewalk/internal/resolver"
)

// runFile loads path, runs it through lex/parse/resolve/eval, and exits
// the process directly with spec.md section 7's static/runtime codes —
// cobra's own error return has no way to carry a specific exit code.
func runFile(path string, log *logrus.Logger) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.WithField("file", path).Debug("loaded source")

	in := interp.New()
	in.Log = log

	if code := runSource(source, in, log); code != diagnostics.ExitOK {
		os.Exit(code)
	}
	return nil
}

// runSource lexes, parses, resolves, and evaluates source against in,
// printing any diagnostic to stderr and returning the exit code that
// diagnostic implies (ExitOK when execution completed normally).
func runSource(source []byte, in *interp.Interpreter, log *logrus.Logger) int {
	scanner := lexer.New(source)
	tokens := scanner.Scan()
	if scanner.HadError() {
		for _, msg := range scanner.Errors() {
			fmt.Fprintln(os.Stderr, msg)
		}
		return diagnostics.ExitStatic
	}
	log.WithField("tokens", len(tokens)).Debug("lexed")

	program, err := parser.New(tokens).Parse()
	if err != nil {
		diagnostics.PrintStaticError(os.Stderr, err)
		return diagnostics.ExitStatic
	}
	log.WithField("decls", len(program.Decls)).Debug("parsed")

	locals, err := resolver.Resolve(program)
	if err != nil {
		diagnostics.PrintStaticError(os.Stderr, err)
		return diagnostics.ExitStatic
	}
	log.Debug("resolved")

	if err := in.Run(program, locals); err != nil {
		rerr, ok := err.(*interp.RuntimeError)
		if !ok {
			fmt.Fprintln(os.Stderr, err)
			return diagnostics.ExitRuntime
		}
		diagnostics.PrintRuntimeError(os.Stderr, rerr)
		return diagnostics.ExitRuntime
	}
	return diagnostics.ExitOK
}

// runREPL reads one line at a time, evaluating each as a complete
// program fragment against a single persistent Interpreter so that
// variables and functions defined on one line stay visible on the next
// (spec.md section 6). A diagnostic on one line is reported but does not
// exit the loop; EOF on the first read exits with code 0.
func runREPL(log *logrus.Logger) error {
	in := interp.New()
	in.Log = log

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return runBatchREPL(in, log)
	}

	rl, err := readline.New(">>> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		runSource([]byte(line), in, log)
	}
}

// runBatchREPL is the no-prompt path taken when stdin isn't a TTY — piped
// or redirected input is read line by line with no ">>> " noise mixed
// into the output.
func runBatchREPL(in *interp.Interpreter, log *logrus.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		runSource([]byte(line), in, log)
	}
	return scanner.Err()
}
