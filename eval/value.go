package eval

import "strconv"

//go:generate stringer -type=ValueType

type ValueType uint8

const (
	_ = ValueType(iota)
	// real values
	VT_NIL
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
	VT_FUNCTION
	VT_BUILTIN
	VT_CLASS
	VT_INSTANCE
	// runtime control
	VT_RETURN
	VT_BREAK
	VT_ERROR
)

// Value is the closed set of runtime values, plus the control values
// used to unwind returns, breaks and runtime errors to their handling
// boundary. Control values never escape the interpreter.
type Value interface {
	Type() ValueType
}

type Nil struct{}
type Boolean bool
type Number float64
type String string

func (v Nil) Type() ValueType     { return VT_NIL }
func (v Boolean) Type() ValueType { return VT_BOOLEAN }
func (v Number) Type() ValueType  { return VT_NUMBER }
func (v String) Type() ValueType  { return VT_STRING }

var (
	NIL   = Nil{}
	TRUE  = Boolean(true)
	FALSE = Boolean(false)
)

func newBool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

// truthy: nil and false are falsy, everything else (zero included)
// is truthy.
func truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(v)
	}
	return true
}

// valuesEqual compares primitives structurally and everything else by
// identity; values of different types are never equal.
func valuesEqual(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case VT_NIL:
		return true
	case VT_BOOLEAN:
		return a.(Boolean) == b.(Boolean)
	case VT_NUMBER:
		return a.(Number) == b.(Number)
	case VT_STRING:
		return a.(String) == b.(String)
	}
	return a == b
}

// Stringify renders a value's canonical printed form: numbers drop a
// trailing .0 on integral values, booleans are true/false, nil is nil.
func Stringify(v Value) string {
	switch v := v.(type) {
	case Nil:
		return "nil"
	case Boolean:
		if v {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case String:
		return string(v)
	case *Function:
		return "<fn " + v.decl.Name.Lexeme + ">"
	case *Builtin:
		return "<native fn>"
	case *Class:
		return v.Name
	case *Instance:
		return v.class.Name + " instance"
	}
	return "<unknown>"
}
