package resolver_test

import (
	"reflect"
	"strings"
	"testing"

	"lox/lexer"
	"lox/parser"
	"lox/resolver"
)

func TestResolverHops(t *testing.T) {
	input := `
fun outer() {
  var x = 1;
  fun inner() {
    return x;
  }
  {
    var y = x;
  }
}
`
	module := lexAndParse(t, input)
	if module == nil {
		return
	}
	r := resolver.New(module)
	r.Resolve()
	if !noErrors(t, "resolver", r.Errors) {
		return
	}
	outer := module.Stmts[0].(*parser.Function)
	inner := outer.Body.Stmts[1].(*parser.Function)
	xInInner := inner.Body.Stmts[0].(*parser.Return).Value.(*parser.Variable)
	block := outer.Body.Stmts[2].(*parser.Block)
	xInBlock := block.Stmts[0].(*parser.Var).Init.(*parser.Variable)

	// inner's body scope is one hop from outer's; the block scope
	// likewise.
	if got, ok := r.Locals[xInInner]; !ok || got != 1 {
		t.Errorf("expected x in inner at hop 1, got=%d (present=%v)", got, ok)
	}
	if got, ok := r.Locals[xInBlock]; !ok || got != 1 {
		t.Errorf("expected x in block at hop 1, got=%d (present=%v)", got, ok)
	}
}

func TestResolverGlobalsUnresolved(t *testing.T) {
	// references with no visible local binding carry no entry; the
	// interpreter treats them as global lookups by name.
	module := lexAndParse(t, `
var a = 1;
fun f() { return a + clock(); }
`)
	if module == nil {
		return
	}
	r := resolver.New(module)
	r.Resolve()
	if !noErrors(t, "resolver", r.Errors) {
		return
	}
	ret := module.Stmts[1].(*parser.Function).Body.Stmts[0].(*parser.Return)
	sum := ret.Value.(*parser.Binary)
	if _, ok := r.Locals[sum.Left]; ok {
		t.Errorf("expected a to be a global reference")
	}
	call := sum.Right.(*parser.Call)
	if _, ok := r.Locals[call.Callee]; ok {
		t.Errorf("expected clock to be a global reference")
	}
}

func TestResolverIdempotent(t *testing.T) {
	module := lexAndParse(t, `
var g = 10;
fun make(n) {
  var acc = n;
  fun add(m) { acc = acc + m; return acc; }
  return add;
}
class Pair { init(a, b) { this.a = a; this.b = b; } sum() { return this.a + this.b; } }
for (var i = 0; i < 3; i = i + 1) { print i; }
`)
	if module == nil {
		return
	}
	r1 := resolver.New(module)
	r1.Resolve()
	r2 := resolver.New(module)
	r2.Resolve()
	if !noErrors(t, "resolver", r1.Errors) || !noErrors(t, "resolver", r2.Errors) {
		return
	}
	if !reflect.DeepEqual(r1.Locals, r2.Locals) {
		t.Errorf("expected identical tables, got %v and %v", r1.Locals, r2.Locals)
	}
}

func TestResolverErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fun f() { var a = a; }", "cannot read"},
		{"return 1;", "return outside of function"},
		{"break;", "break outside of loop"},
		{"fun f() { break; }", "break outside of loop"},
		{"print this;", "this outside of a class method"},
		{"fun f() { return this; }", "this outside of a class method"},
		{"class A { f() { return super.f(); } }", "super in a class with no superclass"},
		{"fun f() { super.g(); }", "super outside of a class method"},
		{"class A < A {}", "cannot inherit from itself"},
		{"class A { init() { return 1; } }", "cannot return a value from an initializer"},
	}
	for i, test := range tests {
		module := lexAndParse(t, test.input)
		if module == nil {
			t.Errorf("tests[%d] (%q) failed to parse", i, test.input)
			continue
		}
		r := resolver.New(module)
		r.Resolve()
		if len(r.Errors) == 0 {
			t.Errorf("tests[%d] (%q): expected resolver errors, got none", i, test.input)
			continue
		}
		if !contains(r.Errors, test.want) {
			t.Errorf("tests[%d] (%q): expected error containing %q, got=%v",
				i, test.input, test.want, r.Errors)
		}
	}
}

func TestResolverAllows(t *testing.T) {
	inputs := []string{
		// re-declaration is a re-definition, at any scope.
		`var a = "1"; var a = "2"; print a;`,
		`{ var a = 1; var a = 2; }`,
		// an initializer may return bare.
		`class A { init() { return; } }`,
		// functions may refer to themselves and to later globals.
		`fun f(n) { if (n > 0) f(n - 1); }`,
		`fun g() { return later; } var later = 1;`,
		// break inside a nested loop body block.
		`while (true) { break; }`,
	}
	for i, input := range inputs {
		module := lexAndParse(t, input)
		if module == nil {
			t.Errorf("tests[%d] (%q) failed to parse", i, input)
			continue
		}
		r := resolver.New(module)
		r.Resolve()
		if len(r.Errors) != 0 {
			t.Errorf("tests[%d] (%q): unexpected errors: %v", i, input, r.Errors)
		}
	}
}

// utils

func lexAndParse(t *testing.T, input string) *parser.Module {
	t.Helper()
	fn := ""
	l := lexer.New(fn, input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		t.Errorf("got lexer errors:")
		for _, x := range l.Errors {
			t.Errorf("%s\n", x.String())
		}
		return nil
	}
	p := parser.New(fn, l.Tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		t.Errorf("got parser errors:")
		for _, x := range p.Errors {
			t.Errorf("%s\n", x.String())
		}
		return nil
	}
	return module
}

func noErrors(t *testing.T, src string, errors []error) bool {
	t.Helper()
	if len(errors) != 0 {
		t.Errorf("got %s errors:\n", src)
		for _, x := range errors {
			t.Errorf("%s\n", x)
		}
		return false
	}
	return true
}

func contains(errs []error, substr string) bool {
	for _, e := range errs {
		if e != nil && strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}
