// Command noolang is a thin CLI wiring the pipeline together: lexer ->
// parser -> TypeProgram -> EvalProgram. It is not part of the language
// core and carries none of that core's design rigor, grounded on the
// teacher's cmd/ailang/main.go flag/color layout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sunholo/noolang/internal/diag"
	"github.com/sunholo/noolang/internal/eval"
	"github.com/sunholo/noolang/internal/infer"
	"github.com/sunholo/noolang/internal/lexer"
	"github.com/sunholo/noolang/internal/parser"
	"github.com/sunholo/noolang/internal/stdlib"
	"github.com/sunholo/noolang/internal/traits"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		printHelp()
		return
	}

	switch command := flag.Arg(0); command {
	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		runFile(flag.Arg(1), true)
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		runFile(flag.Arg(1), false)
	case "repl":
		runREPL()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("noolang - an expression-oriented, trait-polymorphic functional language"))
	fmt.Printf("  %s <file>   type-check and run a program\n", cyan("run"))
	fmt.Printf("  %s <file>   type-check only, without evaluating\n", cyan("check"))
	fmt.Printf("  %s           start the interactive REPL\n", cyan("repl"))
}

// bootstrap builds one shared trait registry and the matching type-level
// and runtime-level base environments, both already carrying the
// effectful builtins and the embedded stdlib prelude — the state every
// entry point (run/check/repl) needs before it can touch user source.
func bootstrap() (*traits.Registry, *infer.Environment, *eval.Evaluator, *eval.Environment, error) {
	reg := traits.New()

	typeEnv := infer.InitializeBuiltins(infer.NewEnvironment())
	typeEnv, err := stdlib.LoadStdlib(typeEnv, reg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	preludeProg, err := stdlib.ParsePrelude()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	runtimeEnv := eval.InitializeBuiltins(eval.NewEnvironment())
	ev := eval.New(reg)
	runtimeEnv = ev.RegisterListInstances(runtimeEnv)
	if _, err := ev.EvalProgram(preludeProg, runtimeEnv); err != nil {
		return nil, nil, nil, nil, err
	}

	return reg, typeEnv, ev, ev.Global, nil
}

func runFile(path string, evaluate bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), path, err)
		os.Exit(1)
	}

	reg, typeEnv, ev, runtimeEnv, err := bootstrap()
	if err != nil {
		fmt.Fprint(os.Stderr, diag.Format(diag.AsDiagnostic(err)))
		os.Exit(1)
	}

	toks := lexer.New(src, path).Tokenize()
	prog, err := parser.Parse(toks)
	if err != nil {
		fmt.Fprint(os.Stderr, diag.Format(diag.AsDiagnostic(err)))
		os.Exit(1)
	}

	fmt.Printf("%s type checking %s\n", cyan("->"), path)
	_, _, results, err := infer.TypeProgram(prog, reg, typeEnv)
	if err != nil {
		fmt.Fprint(os.Stderr, diag.Format(diag.AsDiagnostic(err)))
		os.Exit(1)
	}
	if len(results) > 0 {
		fmt.Printf("%s %s\n", green("OK"), results[len(results)-1].Type.String())
	}

	if !evaluate {
		return
	}

	fmt.Printf("%s running %s\n", cyan("->"), path)
	result, err := ev.EvalProgram(prog, runtimeEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Runtime error"), err)
		os.Exit(1)
	}
	fmt.Println(result.String())
}

func runREPL() {
	reg, typeEnv, ev, runtimeEnv, err := bootstrap()
	if err != nil {
		fmt.Fprint(os.Stderr, diag.Format(diag.AsDiagnostic(err)))
		os.Exit(1)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(bold("noolang repl"), "- type an expression, Ctrl-D to exit")
	for {
		input, err := line.Prompt("noo> ")
		if err != nil {
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		toks := lexer.New([]byte(input), "<repl>").Tokenize()
		prog, err := parser.Parse(toks)
		if err != nil {
			fmt.Println(red("parse error:"), err)
			continue
		}

		_, newTypeEnv, results, err := infer.TypeProgram(prog, reg, typeEnv)
		if err != nil {
			fmt.Println(red("type error:"), err)
			continue
		}

		result, err := ev.EvalProgram(prog, runtimeEnv)
		if err != nil {
			fmt.Println(red("runtime error:"), err)
			continue
		}

		typeEnv = newTypeEnv
		runtimeEnv = ev.Global

		if len(results) > 0 {
			fmt.Printf("%s %s : %s\n", green("=>"), result.String(), results[len(results)-1].Type.String())
		}
	}
}
