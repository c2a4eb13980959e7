package eval

// Environment is a mutable name→value map chained to an enclosing
// environment. Chains are created fresh per call/block/iteration and
// become collectable once no closure or call frame references them;
// the global environment is the unique chain root.
type Environment struct {
	store map[string]Value
	outer *Environment
}

func newEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// Ancestor returns the environment that is distance x
// away from the current environment.
func (e *Environment) Ancestor(distance int) *Environment {
	for distance > 0 {
		distance--
		e = e.outer
	}
	return e
}

// GetAt gets the variable name at the environment that is distance x
// away from the current environment.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	val, ok := e.Ancestor(distance).store[name]
	return val, ok
}

// AssignAt writes the variable name at the environment that is
// distance x away from the current environment.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.Ancestor(distance).store[name] = value
}

// Define binds the given name to the given value in this environment,
// re-defining it if it already exists.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get reads the given name from this environment only; resolved
// references never need to walk the chain at runtime.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Assign overwrites an existing binding in this environment; it
// reports false when the name was never defined here.
func (e *Environment) Assign(name string, value Value) bool {
	if _, ok := e.store[name]; !ok {
		return false
	}
	e.store[name] = value
	return true
}
