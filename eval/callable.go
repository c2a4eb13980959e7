package eval

import "lox/parser"

// Callable is anything invocable by a Call expression: user functions
// and bound methods, natives, and classes (calling a class allocates
// an instance).
type Callable interface {
	Value
	Arity() int
	Call(i *Interp, args []Value) Value
}

// ========
// Function
// ========

// Function is a user function or method together with the environment
// captured at its definition site. Calling it chains a fresh frame to
// that closure, not to the caller's environment -- this is what keeps
// closures stable.
type Function struct {
	decl    *parser.Function
	closure *Environment
	isInit  bool
}

func newFunction(decl *parser.Function, closure *Environment, isInit bool) *Function {
	return &Function{decl: decl, closure: closure, isInit: isInit}
}

func (f *Function) Type() ValueType { return VT_FUNCTION }
func (f *Function) Arity() int      { return len(f.decl.Params) }

// bind produces the bound-method form of f: same declaration, closure
// extended with a binding for `this`.
func (f *Function) bind(inst *Instance) *Function {
	env := newEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInit: f.isInit}
}

func (f *Function) Call(i *Interp, args []Value) Value {
	env := newEnvironment(f.closure)
	for idx, param := range f.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}
	sig := i.execBlock(f.decl.Body.Stmts, env)
	if isError(sig) {
		return sig
	}
	if f.isInit {
		// initializers always return the instance, explicit bare
		// `return` included.
		this, _ := f.closure.GetAt(0, "this")
		return this
	}
	if ret, ok := sig.(*ReturnValue); ok {
		return ret.Value
	}
	// fell off the end without an explicit return.
	return NIL
}

// =======
// Builtin
// =======

// Builtin is a host-provided native with a fixed arity.
type Builtin struct {
	name  string
	arity int
	fn    func(i *Interp, args []Value) Value
}

func (b *Builtin) Type() ValueType { return VT_BUILTIN }
func (b *Builtin) Arity() int      { return b.arity }

func (b *Builtin) Call(i *Interp, args []Value) Value {
	return b.fn(i, args)
}

// =====
// Class
// =====

type Class struct {
	Name    string
	Super   *Class // nil when the class has no superclass
	Methods map[string]*Function
}

func (c *Class) Type() ValueType { return VT_CLASS }

func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// findMethod walks the class's own method table, then its superclass
// chain.
func (c *Class) findMethod(name string) *Function {
	for k := c; k != nil; k = k.Super {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// Calling a class allocates an instance and, when an init method
// exists, runs it bound to the new instance before returning it.
func (c *Class) Call(i *Interp, args []Value) Value {
	inst := newInstance(c)
	if init := c.findMethod("init"); init != nil {
		if v := init.bind(inst).Call(i, args); isError(v) {
			return v
		}
	}
	return inst
}

// ========
// Instance
// ========

// Instance state is shared by every holder of the reference: a field
// assigned through one reference is visible through all others.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func newInstance(class *Class) *Instance {
	return &Instance{class: class, fields: map[string]Value{}}
}

func (inst *Instance) Type() ValueType { return VT_INSTANCE }

// Get reads a property: fields shadow methods; a found method comes
// back bound to this instance.
func (inst *Instance) Get(name string) (Value, bool) {
	if v, ok := inst.fields[name]; ok {
		return v, true
	}
	if m := inst.class.findMethod(name); m != nil {
		return m.bind(inst), true
	}
	return nil, false
}

func (inst *Instance) Set(name string, value Value) {
	inst.fields[name] = value
}
