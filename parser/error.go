package parser

import (
	"fmt"

	"lox/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some expression/statement --
// as opposed to minor errors like a bad assignment target, which
// are recorded without unwinding.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (e ParserError) Error() string { return e.String() }
func (e ParserError) String() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("%s:%d:%d: at end: %s", e.Filename, e.Token.Line, e.Token.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: at %q: %s", e.Filename, e.Token.Line, e.Token.Column, e.Token.Lexeme, e.Message)
}

// report records an error but keeps parsing from the current position.
func (p *Parser) report(tok lexer.Token, s string, args ...interface{}) ParserError {
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	return err
}

// error records an error and unwinds to the nearest declaration(),
// which synchronizes and resumes.
func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) {
	panic(p.report(tok, s, args...))
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.match(typ) {
		p.error(p.peek(), s, args...)
	}
	return p.previous()
}

// synchronize synchronizes the parser by discarding tokens
// until we reach a token which starts a statement. This means
// that cascading errors are discarded, and we still report as
// many errors as possible.
func (p *Parser) synchronize() {
	p.consume()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN, lexer.BREAK:
			return
		}
		p.consume()
	}
}
