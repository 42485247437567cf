package interp

import (
	"bufio"
	"strconv"
	"strings"
	"time"
)

// registerBuiltins seeds the global environment with the five host
// functions spec.md section 6 specifies.
func registerBuiltins(in *Interpreter) {
	in.globals.Define("clock", &Builtin{name: "clock", arity: 0, fn: builtinClock})
	in.globals.Define("str", &Builtin{name: "str", arity: 1, fn: builtinStr})
	in.globals.Define("len", &Builtin{name: "len", arity: 1, fn: builtinLen})
	in.globals.Define("num", &Builtin{name: "num", arity: 1, fn: builtinNum})
	in.globals.Define("input", &Builtin{name: "input", arity: 0, fn: builtinInput})
}

func builtinClock(in *Interpreter, args []Value) (Value, error) {
	return Number{float64(time.Now().UnixNano()) / float64(time.Second)}, nil
}

func builtinStr(in *Interpreter, args []Value) (Value, error) {
	return Str{args[0].String()}, nil
}

func builtinLen(in *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *Array:
		return Number{float64(len(v.Elements))}, nil
	case Str:
		return Number{float64(len(v.V))}, nil
	default:
		return nil, &RuntimeError{Message: "Argument must be an array or string."}
	}
}

func builtinNum(in *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Number:
		return v, nil
	case Str:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.V), 64)
		if err != nil {
			return nil, &RuntimeError{Message: "Argument must be a number."}
		}
		return Number{n}, nil
	default:
		return nil, &RuntimeError{Message: "Argument must be a string or number."}
	}
}

func builtinInput(in *Interpreter, args []Value) (Value, error) {
	if in.stdinReader == nil {
		in.stdinReader = bufio.NewReader(in.Stdin)
	}
	line, err := in.stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return Str{""}, nil
	}
	return Str{strings.TrimSpace(line)}, nil
}
