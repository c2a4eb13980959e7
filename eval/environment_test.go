package eval

import "testing"

func TestEnvironmentChain(t *testing.T) {
	root := newEnvironment(nil)
	mid := newEnvironment(root)
	leaf := newEnvironment(mid)

	root.Define("x", Number(1))
	mid.Define("x", Number(2))

	if env := leaf.Ancestor(2); env != root {
		t.Errorf("expected ancestor 2 to be the root")
	}
	if v, ok := leaf.GetAt(1, "x"); !ok || v.(Number) != 2 {
		t.Errorf("expected x at hop 1 to be 2, got=%v", v)
	}
	if v, ok := leaf.GetAt(2, "x"); !ok || v.(Number) != 1 {
		t.Errorf("expected x at hop 2 to be 1, got=%v", v)
	}
	if _, ok := leaf.GetAt(0, "x"); ok {
		t.Errorf("expected no x at hop 0")
	}

	leaf.AssignAt(2, "x", Number(10))
	if v, _ := root.Get("x"); v.(Number) != 10 {
		t.Errorf("expected AssignAt to write the root, got=%v", v)
	}
	if v, _ := mid.Get("x"); v.(Number) != 2 {
		t.Errorf("expected the mid binding to be untouched, got=%v", v)
	}

	if root.Assign("missing", NIL) {
		t.Errorf("expected Assign to refuse an undefined name")
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{NIL, "nil"},
		{TRUE, "true"},
		{FALSE, "false"},
		{Number(2), "2"},
		{Number(2.5), "2.5"},
		{Number(-0.25), "-0.25"},
		{Number(1e21), "1e+21"},
		{String("hi"), "hi"},
	}
	for i, test := range tests {
		if got := Stringify(test.value); got != test.expected {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.expected, got)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	class := &Class{Name: "C", Methods: map[string]*Function{}}
	a := newInstance(class)
	b := newInstance(class)
	tests := []struct {
		left, right Value
		expected    bool
	}{
		{NIL, NIL, true},
		{NIL, FALSE, false},
		{Number(1), Number(1), true},
		{Number(1), String("1"), false},
		{String("x"), String("x"), true},
		{TRUE, TRUE, true},
		{a, a, true},
		{a, b, false},
		{class, class, true},
	}
	for i, test := range tests {
		if got := valuesEqual(test.left, test.right); got != test.expected {
			t.Errorf("tests[%d]: expected=%v, got=%v", i, test.expected, got)
		}
	}
}
