package eval

import "fmt"

// RuntimeError is both an error and a Value: evaluation propagates it
// outwards like any control value, and the first one to surface aborts
// the run. It carries the offending source position.
type RuntimeError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *RuntimeError) Type() ValueType { return VT_ERROR }
func (e *RuntimeError) Error() string   { return e.String() }
func (e *RuntimeError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// ReturnValue unwinds a `return` to the call boundary that created the
// current frame; it never leaks past it.
type ReturnValue struct {
	Value Value
}

func (v *ReturnValue) Type() ValueType { return VT_RETURN }

type breakSignal struct{}

func (breakSignal) Type() ValueType { return VT_BREAK }

// BREAK unwinds to the innermost enclosing loop.
var BREAK = breakSignal{}

func isError(v Value) bool {
	return v != nil && v.Type() == VT_ERROR
}
