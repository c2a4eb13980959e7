package parser

import "lox/lexer"

// The AST is a closed set of node structs; every consumer dispatches
// with a type switch. Nodes are immutable once the parser returns --
// resolution data lives in a side table keyed by node identity, so
// nothing here is touched after parsing.

type Node interface {
	String() string
	Tok() lexer.Token
	node()
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}

// Module is the root node: an ordered program.
type Module struct {
	Filename string
	Stmts    []Stmt
}

func (node *Module) node() {}

// ==========
// Statements
// ==========

type ExprStmt struct {
	Expr Expr
}

type Print struct {
	Keyword lexer.Token
	Expr    Expr
}

type Var struct {
	Name lexer.Token
	Init Expr // nil when declared without an initializer
}

type Block struct {
	Brace lexer.Token
	Stmts []Stmt
}

type If struct {
	Keyword lexer.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt // nil when absent
}

type While struct {
	Keyword lexer.Token
	Cond    Expr
	Body    Stmt
}

// For keeps its own node (rather than desugaring to While) so that the
// loop variable is re-bound freshly on every iteration; closures made
// in the body capture that iteration's value.
type For struct {
	Keyword lexer.Token
	Init    Stmt // *Var, *ExprStmt, or nil
	Cond    Expr // nil means loop forever
	Incr    Expr // nil when absent
	Body    Stmt
}

type Function struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   *Block
}

type Return struct {
	Keyword lexer.Token
	Value   Expr // nil for a bare `return;`
}

type Break struct {
	Keyword lexer.Token
}

type Class struct {
	Name       lexer.Token
	Superclass *Variable // nil when the class has no superclass clause
	Methods    []*Function
}

func (node *ExprStmt) node() {}
func (node *Print) node()    {}
func (node *Var) node()      {}
func (node *Block) node()    {}
func (node *If) node()       {}
func (node *While) node()    {}
func (node *For) node()      {}
func (node *Function) node() {}
func (node *Return) node()   {}
func (node *Break) node()    {}
func (node *Class) node()    {}

func (node *ExprStmt) stmt() {}
func (node *Print) stmt()    {}
func (node *Var) stmt()      {}
func (node *Block) stmt()    {}
func (node *If) stmt()       {}
func (node *While) stmt()    {}
func (node *For) stmt()      {}
func (node *Function) stmt() {}
func (node *Return) stmt()   {}
func (node *Break) stmt()    {}
func (node *Class) stmt()    {}

func (node *ExprStmt) Tok() lexer.Token { return node.Expr.Tok() }
func (node *Print) Tok() lexer.Token    { return node.Keyword }
func (node *Var) Tok() lexer.Token      { return node.Name }
func (node *Block) Tok() lexer.Token    { return node.Brace }
func (node *If) Tok() lexer.Token       { return node.Keyword }
func (node *While) Tok() lexer.Token    { return node.Keyword }
func (node *For) Tok() lexer.Token      { return node.Keyword }
func (node *Function) Tok() lexer.Token { return node.Name }
func (node *Return) Tok() lexer.Token   { return node.Keyword }
func (node *Break) Tok() lexer.Token    { return node.Keyword }
func (node *Class) Tok() lexer.Token    { return node.Name }

// ===========
// Expressions
// ===========

type Literal struct {
	Token lexer.Token // NUMBER, STRING, TRUE, FALSE or NIL
}

type Grouping struct {
	Paren lexer.Token
	Expr  Expr
}

type Unary struct {
	Op    lexer.Token
	Right Expr
}

type Binary struct {
	Op    lexer.Token
	Left  Expr
	Right Expr
}

// Logical covers `and` and `or`; unlike Binary its right operand is
// only evaluated when the left does not short-circuit.
type Logical struct {
	Op    lexer.Token
	Left  Expr
	Right Expr
}

type Variable struct {
	Name lexer.Token
}

type Assign struct {
	Name  lexer.Token
	Value Expr
}

type Call struct {
	Callee Expr
	Paren  lexer.Token // the closing ')', for error reporting
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   lexer.Token
}

type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

type This struct {
	Keyword lexer.Token
}

type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (node *Literal) node()  {}
func (node *Grouping) node() {}
func (node *Unary) node()    {}
func (node *Binary) node()   {}
func (node *Logical) node()  {}
func (node *Variable) node() {}
func (node *Assign) node()   {}
func (node *Call) node()     {}
func (node *Get) node()      {}
func (node *Set) node()      {}
func (node *This) node()     {}
func (node *Super) node()    {}

func (node *Literal) expr()  {}
func (node *Grouping) expr() {}
func (node *Unary) expr()    {}
func (node *Binary) expr()   {}
func (node *Logical) expr()  {}
func (node *Variable) expr() {}
func (node *Assign) expr()   {}
func (node *Call) expr()     {}
func (node *Get) expr()      {}
func (node *Set) expr()      {}
func (node *This) expr()     {}
func (node *Super) expr()    {}

func (node *Literal) Tok() lexer.Token  { return node.Token }
func (node *Grouping) Tok() lexer.Token { return node.Paren }
func (node *Unary) Tok() lexer.Token    { return node.Op }
func (node *Binary) Tok() lexer.Token   { return node.Op }
func (node *Logical) Tok() lexer.Token  { return node.Op }
func (node *Variable) Tok() lexer.Token { return node.Name }
func (node *Assign) Tok() lexer.Token   { return node.Name }
func (node *Call) Tok() lexer.Token     { return node.Paren }
func (node *Get) Tok() lexer.Token      { return node.Name }
func (node *Set) Tok() lexer.Token      { return node.Name }
func (node *This) Tok() lexer.Token     { return node.Keyword }
func (node *Super) Tok() lexer.Token    { return node.Keyword }
