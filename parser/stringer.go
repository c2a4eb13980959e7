package parser

import (
	"bytes"
	"strings"
)

// Canonical printing: every node prints to source form that lexes and
// parses back to a structurally identical tree. Parentheses are never
// invented -- only Grouping nodes print them -- so the printed shape
// of an expression is exactly what precedence re-derives.

func (node *Module) String() string {
	stmts := []string{}
	for _, stmt := range node.Stmts {
		stmts = append(stmts, stmt.String())
	}
	return strings.Join(stmts, "\n")
}

// Statements

func (node *ExprStmt) String() string { return node.Expr.String() + ";" }

func (node *Print) String() string {
	return "print " + node.Expr.String() + ";"
}

func (node *Var) String() string {
	var buf bytes.Buffer
	buf.WriteString("var ")
	buf.WriteString(node.Name.Lexeme)
	if node.Init != nil {
		buf.WriteString(" = ")
		buf.WriteString(node.Init.String())
	}
	buf.WriteString(";")
	return buf.String()
}

func (node *Block) String() string {
	if len(node.Stmts) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	buf.WriteString("{ ")
	for i, stmt := range node.Stmts {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(stmt.String())
	}
	buf.WriteString(" }")
	return buf.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("if (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(node.Then.String())
	if node.Else != nil {
		buf.WriteString(" else ")
		buf.WriteString(node.Else.String())
	}
	return buf.String()
}

func (node *While) String() string {
	var buf bytes.Buffer
	buf.WriteString("while (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
	return buf.String()
}

func (node *For) String() string {
	var buf bytes.Buffer
	buf.WriteString("for (")
	if node.Init != nil {
		buf.WriteString(node.Init.String())
	} else {
		buf.WriteString(";")
	}
	buf.WriteString(" ")
	if node.Cond != nil {
		buf.WriteString(node.Cond.String())
	}
	buf.WriteString(";")
	if node.Incr != nil {
		buf.WriteString(" ")
		buf.WriteString(node.Incr.String())
	}
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
	return buf.String()
}

func (node *Function) String() string {
	var buf bytes.Buffer
	buf.WriteString("fun ")
	writeFunction(&buf, node)
	return buf.String()
}

func (node *Return) String() string {
	if node.Value == nil {
		return "return;"
	}
	return "return " + node.Value.String() + ";"
}

func (node *Break) String() string { return "break;" }

func (node *Class) String() string {
	var buf bytes.Buffer
	buf.WriteString("class ")
	buf.WriteString(node.Name.Lexeme)
	if node.Superclass != nil {
		buf.WriteString(" < ")
		buf.WriteString(node.Superclass.Name.Lexeme)
	}
	buf.WriteString(" {")
	for _, method := range node.Methods {
		buf.WriteString(" ")
		// methods print without the leading `fun`.
		writeFunction(&buf, method)
	}
	buf.WriteString(" }")
	return buf.String()
}

func writeFunction(buf *bytes.Buffer, node *Function) {
	buf.WriteString(node.Name.Lexeme)
	buf.WriteString("(")
	for i, param := range node.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(param.Lexeme)
	}
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
}

// Expressions

func (node *Literal) String() string  { return node.Token.Lexeme }
func (node *Variable) String() string { return node.Name.Lexeme }
func (node *This) String() string     { return "this" }
func (node *Super) String() string    { return "super." + node.Method.Lexeme }

func (node *Grouping) String() string {
	return "(" + node.Expr.String() + ")"
}

func (node *Unary) String() string {
	return node.Op.Lexeme + node.Right.String()
}

func (node *Binary) String() string {
	var buf bytes.Buffer
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.Lexeme)
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	return buf.String()
}

func (node *Logical) String() string {
	var buf bytes.Buffer
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.Lexeme)
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	return buf.String()
}

func (node *Assign) String() string {
	return node.Name.Lexeme + " = " + node.Value.String()
}

func (node *Call) String() string {
	var buf bytes.Buffer
	buf.WriteString(node.Callee.String())
	buf.WriteString("(")
	for i, arg := range node.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(arg.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (node *Get) String() string {
	return node.Object.String() + "." + node.Name.Lexeme
}

func (node *Set) String() string {
	return node.Object.String() + "." + node.Name.Lexeme + " = " + node.Value.String()
}
