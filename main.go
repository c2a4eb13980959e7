package main

// a lox interpreter: runs a script file, or starts a repl.

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"lox/config"
	"lox/eval"
	"lox/lexer"
	"lox/parser"
	"lox/resolver"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %s\n", err)
		os.Exit(64)
	}
	switch len(os.Args) {
	case 1:
		runPrompt(cfg)
	case 2:
		runFile(cfg, os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "usage: lox [script]")
		os.Exit(64)
	}
}

func newInterp(cfg *config.Config) *eval.Interp {
	interp := eval.New(os.Stdout)
	interp.SetMaxDepth(cfg.Interp.MaxCallDepth)
	return interp
}

func runFile(cfg *config.Config, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %s\n", err)
		os.Exit(64)
	}
	module, locals, ok := compile(path, string(src))
	if !ok {
		os.Exit(65)
	}
	if rerr := newInterp(cfg).Run(module, locals); rerr != nil {
		fmt.Fprintln(os.Stderr, rerr)
		os.Exit(70)
	}
}

func runPrompt(cfg *config.Config) {
	rl, err := readline.New(cfg.Repl.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := newInterp(cfg)
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		module, locals, ok := compile("<stdin>", line)
		if !ok {
			continue
		}
		// a lone expression statement echoes its value, so that
		// `1 + 2` at the prompt behaves like `print 1 + 2;`.
		if len(module.Stmts) == 1 {
			if es, isExpr := module.Stmts[0].(*parser.ExprStmt); isExpr {
				v, rerr := interp.Evaluate(es.Expr, locals)
				if rerr != nil {
					fmt.Fprintln(os.Stderr, rerr)
				} else {
					fmt.Println(eval.Stringify(v))
				}
				continue
			}
		}
		if rerr := interp.Run(module, locals); rerr != nil {
			fmt.Fprintln(os.Stderr, rerr)
		}
	}
}

// compile pushes source through the static stages. A stage with
// errors reports them to stderr and stops the pipeline.
func compile(filename, src string) (*parser.Module, map[parser.Expr]int, bool) {
	l := lexer.New(filename, src)
	l.ScanTokens()
	if len(l.Errors) > 0 {
		for _, e := range l.Errors {
			fmt.Fprintln(os.Stderr, e.String())
		}
		return nil, nil, false
	}
	p := parser.New(filename, l.Tokens)
	module := p.Parse()
	if len(p.Errors) > 0 {
		for _, e := range p.Errors {
			fmt.Fprintln(os.Stderr, e.String())
		}
		return nil, nil, false
	}
	r := resolver.New(module)
	r.Resolve()
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return nil, nil, false
	}
	return module, r.Locals, true
}
