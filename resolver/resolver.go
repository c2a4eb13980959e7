// Package resolver implements identifier resolution semantic analysis,
// as well as the static checks that need scope context (this/super
// placement, returns, breaks, self-inheriting classes). Resolution
// works by recording, per reference site, the distance from the current
// environment where the binding will live at runtime. Distances are
// recorded against node identity in a side table; the AST itself is
// never mutated, so resolving the same tree twice yields the same table.
package resolver

import (
	"errors"
	"fmt"

	"lox/lexer"
	"lox/parser"
)

var TooManyErrors = errors.New("too many errors")

type ResolverError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", re.Filename, re.Token.Line, re.Token.Column, re.Message)
}

// each scope is a map from varname to a boolean, corresponding
// to whether the variable was already initialised.
type Scope map[string]bool

type funcType uint8
type classType uint8

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

const (
	classNone classType = iota
	classClass
	classSubclass
)

type Resolver struct {
	module *parser.Module
	// Locals maps a Variable/Assign/This/Super node to the number of
	// environment hops between its reference site and its binding.
	// Nodes with no entry are global lookups by name.
	Locals map[parser.Expr]int
	Errors []error
	scopes []Scope
	fun    funcType
	class  classType
	inLoop bool
}

func New(module *parser.Module) *Resolver {
	return &Resolver{
		module: module,
		Locals: map[parser.Expr]int{},
		Errors: []error{},
		scopes: []Scope{},
	}
}

func (r *Resolver) curr() Scope { return r.scopes[len(r.scopes)-1] }
func (r *Resolver) push()       { r.scopes = append(r.scopes, Scope{}) }
func (r *Resolver) pop()        { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) err(tok lexer.Token, s string, args ...interface{}) {
	r.Errors = append(r.Errors, ResolverError{
		Filename: r.module.Filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	})
}

// declare marks a name as existing-but-uninitialised in the current
// scope; define marks it ready. The split is what catches `var a = a;`.
// The global scope is not tracked: declarations there are resolved by
// name at runtime, so re-declaration at the top level is simply a
// re-definition.
func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.curr()[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.curr()[name] = true
}

// Resolve resolves the given module.
// This method can only be called once.
func (r *Resolver) Resolve() {
	for _, stmt := range r.module.Stmts {
		r.resolve(stmt)
		if len(r.Errors) >= 10 {
			r.Errors = append(r.Errors, TooManyErrors)
			break
		}
	}
	if len(r.scopes) != 0 || r.fun != funcNone || r.class != classNone {
		panic("something gone wrong!")
	}
}

func (r *Resolver) resolve(node parser.Node) {
	switch node := node.(type) {
	// Statements
	case *parser.Var:
		r.resolveVar(node)
	case *parser.Block:
		r.resolveBlock(node)
	case *parser.For:
		r.resolveFor(node)
	case *parser.While:
		r.resolveWhile(node)
	case *parser.If:
		r.resolveIf(node)
	case *parser.ExprStmt:
		r.resolve(node.Expr)
	case *parser.Print:
		r.resolve(node.Expr)
	case *parser.Break:
		r.resolveBreak(node)
	case *parser.Return:
		r.resolveReturn(node)
	case *parser.Function:
		r.resolveFunctionDecl(node)
	case *parser.Class:
		r.resolveClass(node)
	// Expressions
	case *parser.Binary:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Logical:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Assign:
		r.resolveAssign(node)
	case *parser.Unary:
		r.resolve(node.Right)
	case *parser.Grouping:
		r.resolve(node.Expr)
	case *parser.Get:
		r.resolve(node.Object)
	case *parser.Set:
		r.resolve(node.Value)
		r.resolve(node.Object)
	case *parser.Call:
		r.resolveCall(node)
	case *parser.Variable:
		r.resolveVariable(node)
	case *parser.This:
		r.resolveThis(node)
	case *parser.Super:
		r.resolveSuper(node)
	case *parser.Literal:
		return
	default:
		panic(fmt.Sprintf("unhandled node: %#+v", node))
	}
}

// ==========
// Statements
// ==========

func (r *Resolver) resolveVar(node *parser.Var) {
	r.declare(node.Name.Lexeme)
	if node.Init != nil {
		r.resolve(node.Init)
	}
	r.define(node.Name.Lexeme)
}

func (r *Resolver) resolveBlock(node *parser.Block) {
	r.push()
	for _, x := range node.Stmts {
		r.resolve(x)
	}
	r.pop()
}

func (r *Resolver) resolveFor(node *parser.For) {
	// mirrors the runtime shape: one scope for the loop header, and
	// an inner scope that re-binds the loop variable each iteration.
	r.push()
	if node.Init != nil {
		r.resolve(node.Init)
	}
	if node.Cond != nil {
		r.resolve(node.Cond)
	}
	if node.Incr != nil {
		r.resolve(node.Incr)
	}
	r.push()
	if name := loopVar(node); name != "" {
		r.define(name)
	}
	inLoop := r.inLoop
	r.inLoop = true
	r.resolve(node.Body)
	r.inLoop = inLoop
	r.pop()
	r.pop()
}

func (r *Resolver) resolveWhile(node *parser.While) {
	r.resolve(node.Cond)
	inLoop := r.inLoop
	r.inLoop = true
	r.resolve(node.Body)
	r.inLoop = inLoop
}

func (r *Resolver) resolveIf(node *parser.If) {
	r.resolve(node.Cond)
	r.resolve(node.Then)
	if node.Else != nil {
		r.resolve(node.Else)
	}
}

func (r *Resolver) resolveBreak(node *parser.Break) {
	if !r.inLoop {
		r.err(node.Keyword, "break outside of loop")
	}
}

func (r *Resolver) resolveReturn(node *parser.Return) {
	if r.fun == funcNone {
		r.err(node.Keyword, "return outside of function")
	}
	if node.Value != nil {
		if r.fun == funcInitializer {
			r.err(node.Keyword, "cannot return a value from an initializer")
		}
		r.resolve(node.Value)
	}
}

func (r *Resolver) resolveFunctionDecl(node *parser.Function) {
	// the name is defined before the body resolves, so a function
	// can refer to itself.
	r.declare(node.Name.Lexeme)
	r.define(node.Name.Lexeme)
	r.resolveFunction(node, funcFunction)
}

func (r *Resolver) resolveFunction(node *parser.Function, kind funcType) {
	fun := r.fun
	inLoop := r.inLoop
	r.fun = kind
	r.inLoop = false // a break cannot cross a function boundary
	r.push()
	for _, param := range node.Params {
		r.define(param.Lexeme)
	}
	// body statements resolve directly in the parameter scope; at
	// runtime they execute in the call frame that binds parameters.
	for _, stmt := range node.Body.Stmts {
		r.resolve(stmt)
	}
	r.pop()
	r.inLoop = inLoop
	r.fun = fun
}

func (r *Resolver) resolveClass(node *parser.Class) {
	class := r.class
	r.class = classClass

	r.declare(node.Name.Lexeme)
	r.define(node.Name.Lexeme)

	if node.Superclass != nil {
		if node.Superclass.Name.Lexeme == node.Name.Lexeme {
			r.err(node.Superclass.Name, "a class cannot inherit from itself")
		}
		r.class = classSubclass
		r.resolveVariable(node.Superclass)
		// the superclass scope wraps the method scopes so that
		// `super` lookups succeed.
		r.push()
		r.define("super")
	}

	r.push()
	r.define("this")
	for _, method := range node.Methods {
		kind := funcMethod
		if method.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.pop()

	if node.Superclass != nil {
		r.pop()
	}
	r.class = class
}

// ===========
// Expressions
// ===========

func (r *Resolver) resolveAssign(node *parser.Assign) {
	r.resolve(node.Value)
	r.lookup(node, node.Name)
}

func (r *Resolver) resolveCall(node *parser.Call) {
	r.resolve(node.Callee)
	for _, arg := range node.Args {
		r.resolve(arg)
	}
}

func (r *Resolver) resolveVariable(node *parser.Variable) {
	name := node.Name.Lexeme
	if len(r.scopes) > 0 {
		if ready, ok := r.curr()[name]; ok && !ready {
			r.err(node.Name, "cannot read %q in its own initializer", name)
			return
		}
	}
	r.lookup(node, node.Name)
}

func (r *Resolver) resolveThis(node *parser.This) {
	if r.class == classNone {
		r.err(node.Keyword, "this outside of a class method")
		return
	}
	r.lookup(node, node.Keyword)
}

func (r *Resolver) resolveSuper(node *parser.Super) {
	switch r.class {
	case classNone:
		r.err(node.Keyword, "super outside of a class method")
		return
	case classClass:
		r.err(node.Keyword, "super in a class with no superclass")
		return
	}
	r.lookup(node, node.Keyword)
}

// lookup walks the scope stack innermost-out; the matching scope's
// distance from the top is the hop count. Not finding the name is not
// an error here -- the reference falls through to a global lookup by
// name at runtime, where natives and late top-level definitions live.
func (r *Resolver) lookup(node parser.Expr, token lexer.Token) {
	name := token.Lexeme
	curr := len(r.scopes) - 1
	for i := curr; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Locals[node] = curr - i
			return
		}
	}
}

// =========
// Utilities
// =========

// loopVar returns the name a for loop's initializer declares, if any.
func loopVar(node *parser.For) string {
	if v, ok := node.Init.(*parser.Var); ok {
		return v.Name.Lexeme
	}
	return ""
}
