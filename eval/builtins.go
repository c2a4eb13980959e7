package eval

import (
	"time"
	"unicode/utf8"
)

// The native surface: a handful of host-provided callables, pre-bound
// in the global environment before any user code runs.

func registerBuiltins(globals *Environment) {
	globals.Define("clock", &Builtin{
		name:  "clock",
		arity: 0,
		fn: func(i *Interp, args []Value) Value {
			return Number(float64(time.Now().UnixNano()) / 1e9)
		},
	})
	globals.Define("str", &Builtin{
		name:  "str",
		arity: 1,
		fn: func(i *Interp, args []Value) Value {
			return String(Stringify(args[0]))
		},
	})
	globals.Define("len", &Builtin{
		name:  "len",
		arity: 1,
		fn: func(i *Interp, args []Value) Value {
			s, ok := args[0].(String)
			if !ok {
				return &RuntimeError{Message: "len: operand must be a string"}
			}
			return Number(utf8.RuneCountInString(string(s)))
		},
	})
}
