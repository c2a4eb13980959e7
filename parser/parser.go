package parser

import "lox/lexer"

type Parser struct {
	filename string
	tokens   []lexer.Token
	Errors   []ParserError
	curr     int // how many we have consumed.
}

func New(filename string, tokens []lexer.Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// module → declaration* EOF

func (p *Parser) Parse() *Module {
	module := &Module{Filename: p.filename, Stmts: []Stmt{}}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			module.Stmts = append(module.Stmts, stmt)
		}
	}
	return module
}

// =================
// statement parsing
// =================
//
//   declaration → class | fun | var | statement
//   statement   → print | return | break | for | while | if | block | exprStmt
//
//   class    → "class" IDENT ( "<" IDENT )? "{" function* "}"
//   fun      → "fun" function
//   function → IDENT "(" parameters? ")" block
//   var      → "var" IDENT ( "=" expression )? ";"
//   print    → "print" expression ";"
//   return   → "return" expression? ";"
//   break    → "break" ";"
//   for      → "for" "(" ( var | exprStmt | ";" ) expression? ";" expression? ")" statement
//   while    → "while" "(" expression ")" statement
//   if       → "if" "(" expression ")" statement ( "else" statement )?
//   block    → "{" declaration* "}"
//   exprStmt → expression ";"

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize(). We have to make
		// sure that all top-level calls to parse statements/expressions
		// have a recover.
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	switch {
	case p.check(lexer.CLASS):
		stmt = p.classDecl()
	case p.check(lexer.FUN):
		p.consume()
		stmt = p.function("function")
	case p.check(lexer.VAR):
		stmt = p.varDecl()
	default:
		stmt = p.statement()
	}
	return
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.RETURN):
		return p.returnStmt()
	case p.check(lexer.BREAK):
		return p.breakStmt()
	case p.check(lexer.FOR):
		return p.forStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.LEFT_BRACE):
		return p.blockStmt()
	}
	return p.exprStmt()
}

func (p *Parser) classDecl() Stmt {
	p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected a class name")
	var superclass *Variable
	if p.match(lexer.LESS) {
		tok := p.expect(lexer.IDENTIFIER, "expected a superclass name")
		superclass = &Variable{Name: tok}
	}
	p.expect(lexer.LEFT_BRACE, "expected { before class body")
	methods := []*Function{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		// method bodies are function declarations without a
		// leading `fun`.
		methods = append(methods, p.function("method"))
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *Function {
	name := p.expect(lexer.IDENTIFIER, "expected a %s name", kind)
	p.expect(lexer.LEFT_PAREN, "expected ( after %s name", kind)
	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			params = append(params, p.expect(lexer.IDENTIFIER, "expected a parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	if !p.check(lexer.LEFT_BRACE) {
		p.error(p.peek(), "expected { before %s body", kind)
	}
	body := p.blockStmt().(*Block)
	return &Function{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() Stmt {
	p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected an identifier")
	var init Expr
	if p.match(lexer.EQUAL) {
		init = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after variable declaration")
	return &Var{Name: name, Init: init}
}

func (p *Parser) printStmt() Stmt {
	keyword := p.consume()
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after print value")
	return &Print{Keyword: keyword, Expr: expr}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.consume()
	var value Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after return")
	return &Return{Keyword: keyword, Value: value}
}

func (p *Parser) breakStmt() Stmt {
	keyword := p.consume()
	p.expect(lexer.SEMICOLON, "expected ; after break")
	return &Break{Keyword: keyword}
}

func (p *Parser) forStmt() Stmt {
	keyword := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	var init Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		init = nil
	case p.check(lexer.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after loop condition")
	var incr Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &For{Keyword: keyword, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) whileStmt() Stmt {
	keyword := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &While{Keyword: keyword, Cond: cond, Body: body}
}

func (p *Parser) ifStmt() Stmt {
	keyword := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.statement()
	var elseStmt Stmt
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return &If{Keyword: keyword, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) blockStmt() Stmt {
	brace := p.consume()
	stmts := []Stmt{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return &Block{Brace: brace, Stmts: stmts}
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after expression statement")
	return &ExprStmt{Expr: expr}
}

// ==================
// expression parsing
// ==================
//
// a strict rule chain, lowest to highest precedence; each rule calls
// the next one and loops on its own operator set:
//
//   expression → assignment
//   assignment → ( call "." )? IDENT "=" assignment | or
//   or         → and ( "or" and )*
//   and        → equality ( "and" equality )*
//   equality   → comparison ( ( "==" | "!=" ) comparison )*
//   comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//   term       → factor ( ( "-" | "+" ) factor )*
//   factor     → unary ( ( "/" | "*" ) unary )*
//   unary      → ( "!" | "-" ) unary | call
//   call       → primary ( "(" arguments? ")" | "." IDENT )*
//   primary    → NUMBER | STRING | "true" | "false" | "nil" | "this"
//              | IDENT | "(" expression ")" | "super" "." IDENT

func (p *Parser) expression() Expr { return p.assignment() }

func (p *Parser) assignment() Expr {
	expr := p.or()
	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment() // right-associative
		switch left := expr.(type) {
		case *Variable:
			return &Assign{Name: left.Name, Value: value}
		case *Get:
			return &Set{Object: left.Object, Name: left.Name, Value: value}
		}
		// this is not an error worth panicking over.
		// just move along -- we will put it in `.Errors'.
		p.report(equals, "invalid assignment target")
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.check(lexer.OR) {
		op := p.consume()
		expr = &Logical{Op: op, Left: expr, Right: p.and()}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.check(lexer.AND) {
		op := p.consume()
		expr = &Logical{Op: op, Left: expr, Right: p.equality()}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.check(lexer.EQUAL_EQUAL) || p.check(lexer.BANG_EQUAL) {
		op := p.consume()
		expr = &Binary{Op: op, Left: expr, Right: p.comparison()}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.check(lexer.GREATER) || p.check(lexer.GREATER_EQUAL) ||
		p.check(lexer.LESS) || p.check(lexer.LESS_EQUAL) {
		op := p.consume()
		expr = &Binary{Op: op, Left: expr, Right: p.term()}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.check(lexer.MINUS) || p.check(lexer.PLUS) {
		op := p.consume()
		expr = &Binary{Op: op, Left: expr, Right: p.factor()}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.check(lexer.SLASH) || p.check(lexer.STAR) {
		op := p.consume()
		expr = &Binary{Op: op, Left: expr, Right: p.unary()}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.check(lexer.BANG) || p.check(lexer.MINUS) {
		op := p.consume()
		return &Unary{Op: op, Right: p.unary()}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.check(lexer.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.check(lexer.DOT):
			p.consume()
			name := p.expect(lexer.IDENTIFIER, "expected a property name after .")
			expr = &Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	p.consume() // the '('
	args := []Expr{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.expect(lexer.RIGHT_PAREN, "unclosed ( in call")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.check(lexer.NUMBER), p.check(lexer.STRING),
		p.check(lexer.TRUE), p.check(lexer.FALSE), p.check(lexer.NIL):
		return &Literal{Token: p.consume()}
	case p.check(lexer.IDENTIFIER):
		return &Variable{Name: p.consume()}
	case p.check(lexer.THIS):
		return &This{Keyword: p.consume()}
	case p.check(lexer.SUPER):
		keyword := p.consume()
		p.expect(lexer.DOT, "expected . after super")
		method := p.expect(lexer.IDENTIFIER, "expected a superclass method name")
		return &Super{Keyword: keyword, Method: method}
	case p.check(lexer.LEFT_PAREN):
		paren := p.consume()
		expr := p.expression()
		p.expect(lexer.RIGHT_PAREN, "unmatched (")
		return &Grouping{Paren: paren, Expr: expr}
	}
	p.error(p.peek(), "not an expression: %s", p.peek().Type)
	return nil // unreachable
}
