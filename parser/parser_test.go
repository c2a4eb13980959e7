package parser_test

import (
	"testing"

	"lox/lexer"
	"lox/parser"
)

func TestParserValid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abcdef = 2;", "abcdef = 2;"},
		{"a + b + c;", "a + b + c;"},
		{"a + b * c;", "a + b * c;"},
		{"(a + b) * c;", "(a + b) * c;"},
		{"a + b >= c == true;", "a + b >= c == true;"},
		{"a + !b or x;", "a + !b or x;"},
		{"a and b or c;", "a and b or c;"},
		{"a + -b * c / d;", "a + -b * c / d;"},
		{"a = b = c;", "a = b = c;"},
		{"print 1 + \"1\";", "print 1 + \"1\";"},
		{"var x = 10;", "var x = 10;"},
		{"var x;", "var x;"},
		{"if (true) { x = 1; }", "if (true) { x = 1; }"},
		{"if (true) x = 1; else y = 2;", "if (true) x = 1; else y = 2;"},
		{"while (x < 10) x = x + 1;", "while (x < 10) x = x + 1;"},
		{"for (var i = 0; i < 3; i = i + 1) print i;", "for (var i = 0; i < 3; i = i + 1) print i;"},
		{"for (;;) break;", "for (; ;) break;"},
		{"fun f(a, b) { return a + b; }", "fun f(a, b) { return a + b; }"},
		{"fun f() { return; }", "fun f() { return; }"},
		{"a()();", "a()();"},
		{"a.b.c();", "a.b.c();"},
		{"a.b = c;", "a.b = c;"},
		{"this.x = 1;", "this.x = 1;"},
		{"super.method(1, 2);", "super.method(1, 2);"},
		{"class A {}", "class A { }"},
		{"class B < A { init(x) { this.x = x; } }", "class B < A { init(x) { this.x = x; } }"},
	}
	for i, test := range tests {
		var tokens []lexer.Token
		if !checkLexerErrors(t, test.input, &tokens) {
			t.Errorf("tests[%d] (%q) failed", i, test.input)
			continue
		}
		p := parser.New("", tokens)
		module := p.Parse()
		if len(p.Errors) != 0 {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Error("parser errors:")
			for _, err := range p.Errors {
				t.Error(err.String())
			}
			continue
		}
		if module.String() != test.expected {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%q, got=%q", test.expected, module.String())
			continue
		}
	}
}

// The printed form of any valid parse must parse back to a tree with
// identical structure; we compare canonical forms of both parses.
func TestParserRoundTrip(t *testing.T) {
	inputs := []string{
		`var a = (1 + 2) * 3 - -4;`,
		`fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }`,
		`class Account { init(balance) { this.balance = balance; } deposit(n) { this.balance = this.balance + n; } }`,
		`class Savings < Account { deposit(n) { super.deposit(n * 2); } }`,
		`for (var i = 0; i < 10; i = i + 1) { if (i == 5) break; print i; }`,
		`while (a or b and !c) { a = a == (b = c); }`,
		`print f(1)(2).field.method(3);`,
	}
	for i, input := range inputs {
		first := parseProgram(t, input)
		if first == nil {
			t.Errorf("tests[%d] (%q) failed to parse", i, input)
			continue
		}
		second := parseProgram(t, first.String())
		if second == nil {
			t.Errorf("tests[%d]: printed form %q failed to parse", i, first.String())
			continue
		}
		if first.String() != second.String() {
			t.Errorf("tests[%d] (%q)", i, input)
			t.Errorf("round-trip mismatch:\n first=%q\nsecond=%q", first.String(), second.String())
		}
	}
}

func TestParserInvalid(t *testing.T) {
	inputs := []string{
		"var;",
		"var x = ;",
		"(a + b;",
		"a + b",
		"1 + 2 = 3;",
		"a.b.c = = 2;",
		"if (true;",
		"fun f(a, { return; }",
		"class { }",
		"super.;",
		"for (var i = 0 i < 3;) x;",
	}
	for i, input := range inputs {
		var tokens []lexer.Token
		if !checkLexerErrors(t, input, &tokens) {
			t.Errorf("tests[%d] (%q) failed", i, input)
			continue
		}
		p := parser.New("<test>", tokens)
		p.Parse()
		if len(p.Errors) == 0 {
			t.Errorf("tests[%d] (%q): expected parser errors, got none", i, input)
		}
	}
}

// Panic-mode recovery should surface independent errors from a single
// pass instead of stopping at the first one.
func TestParserRecovery(t *testing.T) {
	input := `
var = 1;
print "fine";
if (true;
var ok = 2;
fun () { return; }
`
	var tokens []lexer.Token
	if !checkLexerErrors(t, input, &tokens) {
		t.Fatal("lexer failed")
	}
	p := parser.New("<test>", tokens)
	module := p.Parse()
	if len(p.Errors) < 3 {
		t.Errorf("expected at least 3 errors, got=%d", len(p.Errors))
		for _, err := range p.Errors {
			t.Log(err.String())
		}
	}
	// the well-formed statements between errors still parse.
	if len(module.Stmts) < 2 {
		t.Errorf("expected recovered statements, got=%d", len(module.Stmts))
	}
}

// utils

func parseProgram(t *testing.T, input string) *parser.Module {
	t.Helper()
	var tokens []lexer.Token
	if !checkLexerErrors(t, input, &tokens) {
		return nil
	}
	p := parser.New("", tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		for _, err := range p.Errors {
			t.Log(err.String())
		}
		return nil
	}
	return module
}

func checkLexerErrors(t *testing.T, input string, tokens *[]lexer.Token) bool {
	t.Helper()
	lex := lexer.New("", input)
	lex.ScanTokens()
	if len(lex.Errors) != 0 {
		t.Error("lexer errors:")
		for _, x := range lex.Errors {
			t.Error(x.String())
		}
		return false
	}
	*tokens = lex.Tokens
	return true
}
