package eval

// Implements the actual evaluator for the language. Statements and
// expressions both produce a Value; for statements a nil result means
// normal completion and anything else is a control signal (return,
// break, runtime error) unwinding to its handling boundary.

import (
	"fmt"
	"io"
	"os"

	"lox/lexer"
	"lox/parser"
)

// DefaultMaxDepth bounds call recursion when no configuration
// overrides it.
const DefaultMaxDepth = 1024

type Interp struct {
	filename string
	globals  *Environment // the unique chain root, holds natives + top-level names
	env      *Environment // current executing environment
	locals   map[parser.Expr]int
	out      io.Writer
	depth    int
	maxDepth int
}

func New(out io.Writer) *Interp {
	if out == nil {
		out = os.Stdout
	}
	i := &Interp{
		globals:  newEnvironment(nil),
		locals:   map[parser.Expr]int{},
		out:      out,
		maxDepth: DefaultMaxDepth,
	}
	i.env = i.globals
	registerBuiltins(i.globals)
	return i
}

// SetMaxDepth overrides the call-depth bound.
func (i *Interp) SetMaxDepth(n int) {
	if n > 0 {
		i.maxDepth = n
	}
}

// Globals returns the names pre-bound before any user code runs.
func (i *Interp) Globals() []string {
	names := make([]string, 0, len(i.globals.store))
	for name := range i.globals.store {
		names = append(names, name)
	}
	return names
}

// Run executes the module against the resolver's table. The first
// runtime error aborts the run and is returned; the interpreter state
// survives for the next Run (the REPL relies on this).
func (i *Interp) Run(module *parser.Module, locals map[parser.Expr]int) *RuntimeError {
	i.filename = module.Filename
	for node, distance := range locals {
		i.locals[node] = distance
	}
	for _, stmt := range module.Stmts {
		if sig := i.exec(stmt); sig != nil {
			if err, ok := sig.(*RuntimeError); ok {
				return err
			}
			panic(fmt.Sprintf("control signal escaped to top level: %s", sig.Type()))
		}
	}
	return nil
}

// Evaluate computes a single expression; the REPL uses it to echo
// results.
func (i *Interp) Evaluate(expr parser.Expr, locals map[parser.Expr]int) (Value, *RuntimeError) {
	for node, distance := range locals {
		i.locals[node] = distance
	}
	v := i.eval(expr)
	if err, ok := v.(*RuntimeError); ok {
		return nil, err
	}
	return v, nil
}

// ==========
// Statements
// ==========

func (i *Interp) exec(node parser.Stmt) Value {
	switch node := node.(type) {
	case *parser.ExprStmt:
		if v := i.eval(node.Expr); isError(v) {
			return v
		}
		return nil
	case *parser.Print:
		v := i.eval(node.Expr)
		if isError(v) {
			return v
		}
		fmt.Fprintln(i.out, Stringify(v))
		return nil
	case *parser.Var:
		var v Value = NIL
		if node.Init != nil {
			v = i.eval(node.Init)
			if isError(v) {
				return v
			}
		}
		i.env.Define(node.Name.Lexeme, v)
		return nil
	case *parser.Block:
		return i.execBlock(node.Stmts, newEnvironment(i.env))
	case *parser.If:
		cond := i.eval(node.Cond)
		if isError(cond) {
			return cond
		}
		if truthy(cond) {
			return i.exec(node.Then)
		}
		if node.Else != nil {
			return i.exec(node.Else)
		}
		return nil
	case *parser.While:
		return i.execWhile(node)
	case *parser.For:
		return i.execFor(node)
	case *parser.Function:
		i.env.Define(node.Name.Lexeme, newFunction(node, i.env, false))
		return nil
	case *parser.Return:
		var v Value = NIL
		if node.Value != nil {
			v = i.eval(node.Value)
			if isError(v) {
				return v
			}
		}
		return &ReturnValue{Value: v}
	case *parser.Break:
		return BREAK
	case *parser.Class:
		return i.execClass(node)
	}
	panic(fmt.Sprintf("unhandled statement: %#+v", node))
}

// execBlock runs stmts in env and restores the previous environment on
// every exit path -- normal completion, return, break, or error.
func (i *Interp) execBlock(stmts []parser.Stmt, env *Environment) Value {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()
	for _, stmt := range stmts {
		if sig := i.exec(stmt); sig != nil {
			return sig
		}
	}
	return nil
}

func (i *Interp) execWhile(node *parser.While) Value {
	for {
		cond := i.eval(node.Cond)
		if isError(cond) {
			return cond
		}
		if !truthy(cond) {
			return nil
		}
		if sig := i.exec(node.Body); sig != nil {
			if sig.Type() == VT_BREAK {
				return nil
			}
			return sig
		}
	}
}

// execFor gives the loop variable a fresh binding per iteration, so a
// closure made in iteration n captures the value i had during
// iteration n.
func (i *Interp) execFor(node *parser.For) Value {
	prev := i.env
	head := newEnvironment(prev)
	i.env = head
	defer func() { i.env = prev }()
	if node.Init != nil {
		if sig := i.exec(node.Init); sig != nil {
			return sig
		}
	}
	name := ""
	if v, ok := node.Init.(*parser.Var); ok {
		name = v.Name.Lexeme
	}
	for {
		if node.Cond != nil {
			cond := i.eval(node.Cond)
			if isError(cond) {
				return cond
			}
			if !truthy(cond) {
				return nil
			}
		}
		iter := newEnvironment(head)
		if name != "" {
			v, _ := head.Get(name)
			iter.Define(name, v)
		}
		i.env = iter
		sig := i.exec(node.Body)
		if name != "" {
			// writes to the loop variable survive into the next
			// iteration and the increment.
			v, _ := iter.Get(name)
			head.Define(name, v)
		}
		i.env = head
		if sig != nil {
			if sig.Type() == VT_BREAK {
				return nil
			}
			return sig
		}
		if node.Incr != nil {
			if v := i.eval(node.Incr); isError(v) {
				return v
			}
		}
	}
}

func (i *Interp) execClass(node *parser.Class) Value {
	var super *Class
	if node.Superclass != nil {
		v := i.lookupVariable(node.Superclass, node.Superclass.Name)
		if isError(v) {
			return v
		}
		sc, ok := v.(*Class)
		if !ok {
			return i.errf(node.Superclass.Name, "superclass must be a class")
		}
		super = sc
	}
	// methods close over an environment extended with `super` when a
	// superclass exists; super.x() hops there at dispatch time.
	env := i.env
	if super != nil {
		env = newEnvironment(i.env)
		env.Define("super", super)
	}
	methods := map[string]*Function{}
	for _, method := range node.Methods {
		methods[method.Name.Lexeme] = newFunction(method, env, method.Name.Lexeme == "init")
	}
	i.env.Define(node.Name.Lexeme, &Class{
		Name:    node.Name.Lexeme,
		Super:   super,
		Methods: methods,
	})
	return nil
}

// ===========
// Expressions
// ===========

func (i *Interp) eval(node parser.Expr) Value {
	switch node := node.(type) {
	case *parser.Literal:
		return i.evalLiteral(node)
	case *parser.Grouping:
		return i.eval(node.Expr)
	case *parser.Unary:
		return i.evalUnary(node)
	case *parser.Binary:
		return i.evalBinary(node)
	case *parser.Logical:
		return i.evalLogical(node)
	case *parser.Variable:
		return i.lookupVariable(node, node.Name)
	case *parser.This:
		return i.lookupVariable(node, node.Keyword)
	case *parser.Assign:
		return i.evalAssign(node)
	case *parser.Call:
		return i.evalCall(node)
	case *parser.Get:
		return i.evalGet(node)
	case *parser.Set:
		return i.evalSet(node)
	case *parser.Super:
		return i.evalSuper(node)
	}
	panic(fmt.Sprintf("unhandled expression: %#+v", node))
}

func (i *Interp) evalLiteral(node *parser.Literal) Value {
	switch node.Token.Type {
	case lexer.NUMBER:
		return Number(node.Token.Literal.(float64))
	case lexer.STRING:
		return String(node.Token.Literal.(string))
	case lexer.TRUE:
		return TRUE
	case lexer.FALSE:
		return FALSE
	case lexer.NIL:
		return NIL
	}
	panic(fmt.Sprintf("unhandled literal: %s", node.Token.Type))
}

func (i *Interp) evalUnary(node *parser.Unary) Value {
	right := i.eval(node.Right)
	if isError(right) {
		return right
	}
	switch node.Op.Type {
	case lexer.MINUS:
		if n, ok := right.(Number); ok {
			return Number(-n)
		}
		return i.errf(node.Op, "operand must be a number")
	case lexer.BANG:
		return newBool(!truthy(right))
	}
	panic(fmt.Sprintf("unhandled unary operator: %s", node.Op.Type))
}

func (i *Interp) evalBinary(node *parser.Binary) Value {
	left := i.eval(node.Left)
	if isError(left) {
		return left
	}
	right := i.eval(node.Right)
	if isError(right) {
		return right
	}
	switch node.Op.Type {
	case lexer.EQUAL_EQUAL:
		return newBool(valuesEqual(left, right))
	case lexer.BANG_EQUAL:
		return newBool(!valuesEqual(left, right))
	case lexer.PLUS:
		if l, ok := left.(Number); ok {
			if r, ok := right.(Number); ok {
				return Number(l + r)
			}
		}
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				return String(l + r)
			}
		}
		return i.errf(node.Op, "operands must be two numbers or two strings")
	}
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return i.errf(node.Op, "operands must be numbers")
	}
	switch node.Op.Type {
	case lexer.MINUS:
		return Number(l - r)
	case lexer.STAR:
		return Number(l * r)
	case lexer.SLASH:
		if r == 0 {
			return i.errf(node.Op, "division by zero")
		}
		return Number(l / r)
	case lexer.GREATER:
		return newBool(l > r)
	case lexer.GREATER_EQUAL:
		return newBool(l >= r)
	case lexer.LESS:
		return newBool(l < r)
	case lexer.LESS_EQUAL:
		return newBool(l <= r)
	}
	panic(fmt.Sprintf("unhandled binary operator: %s", node.Op.Type))
}

// evalLogical short-circuits and yields the deciding operand itself,
// not a coerced boolean.
func (i *Interp) evalLogical(node *parser.Logical) Value {
	left := i.eval(node.Left)
	if isError(left) {
		return left
	}
	if node.Op.Type == lexer.OR {
		if truthy(left) {
			return left
		}
	} else {
		if !truthy(left) {
			return left
		}
	}
	return i.eval(node.Right)
}

func (i *Interp) evalAssign(node *parser.Assign) Value {
	v := i.eval(node.Value)
	if isError(v) {
		return v
	}
	if distance, ok := i.locals[node]; ok {
		i.env.AssignAt(distance, node.Name.Lexeme, v)
		return v
	}
	if !i.globals.Assign(node.Name.Lexeme, v) {
		return i.errf(node.Name, "undefined variable %q", node.Name.Lexeme)
	}
	return v
}

func (i *Interp) evalCall(node *parser.Call) Value {
	callee := i.eval(node.Callee)
	if isError(callee) {
		return callee
	}
	args := make([]Value, 0, len(node.Args))
	for _, arg := range node.Args {
		v := i.eval(arg)
		if isError(v) {
			return v
		}
		args = append(args, v)
	}
	fn, ok := callee.(Callable)
	if !ok {
		return i.errf(node.Paren, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return i.errf(node.Paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	i.depth++
	if i.depth > i.maxDepth {
		i.depth--
		return i.errf(node.Paren, "stack overflow")
	}
	v := fn.Call(i, args)
	i.depth--
	if err, ok := v.(*RuntimeError); ok && err.Line == 0 {
		// natives have no token of their own; pin the call site.
		err.Filename = i.filename
		err.Line = node.Paren.Line
		err.Column = node.Paren.Column
	}
	return v
}

func (i *Interp) evalGet(node *parser.Get) Value {
	object := i.eval(node.Object)
	if isError(object) {
		return object
	}
	inst, ok := object.(*Instance)
	if !ok {
		return i.errf(node.Name, "only instances have properties")
	}
	if v, ok := inst.Get(node.Name.Lexeme); ok {
		return v
	}
	return i.errf(node.Name, "undefined property %q", node.Name.Lexeme)
}

func (i *Interp) evalSet(node *parser.Set) Value {
	object := i.eval(node.Object)
	if isError(object) {
		return object
	}
	inst, ok := object.(*Instance)
	if !ok {
		return i.errf(node.Name, "only instances have fields")
	}
	v := i.eval(node.Value)
	if isError(v) {
		return v
	}
	inst.Set(node.Name.Lexeme, v)
	return v
}

// evalSuper starts method lookup one level up the superclass chain and
// binds the found method to the current instance, so the superclass
// implementation runs with `this` bound to the subclass instance.
func (i *Interp) evalSuper(node *parser.Super) Value {
	distance, ok := i.locals[node]
	if !ok {
		return i.errf(node.Keyword, "super outside of a class method")
	}
	superV, _ := i.env.GetAt(distance, "super")
	thisV, _ := i.env.GetAt(distance-1, "this")
	super := superV.(*Class)
	method := super.findMethod(node.Method.Lexeme)
	if method == nil {
		return i.errf(node.Method, "undefined property %q", node.Method.Lexeme)
	}
	return method.bind(thisV.(*Instance))
}

// =====
// Utils
// =====

// lookupVariable walks exactly the resolved hop count when one exists;
// otherwise it is a global lookup by name.
func (i *Interp) lookupVariable(node parser.Expr, tok lexer.Token) Value {
	if distance, ok := i.locals[node]; ok {
		if v, ok := i.env.GetAt(distance, tok.Lexeme); ok {
			return v
		}
		return i.errf(tok, "undefined variable %q", tok.Lexeme)
	}
	if v, ok := i.globals.Get(tok.Lexeme); ok {
		return v
	}
	return i.errf(tok, "undefined variable %q", tok.Lexeme)
}

func (i *Interp) errf(tok lexer.Token, s string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Filename: i.filename,
		Line:     tok.Line,
		Column:   tok.Column,
		Message:  fmt.Sprintf(s, args...),
	}
}
