// Package eval implements the Evaluator (C9, spec §4.9): a tree-walking
// interpreter over the same AST the inferencer consumes, grounded on the
// teacher's internal/eval (Value interface, Environment, SimpleEvaluator's
// evalExpr dispatch) and adapted for Noolang's uncurried-but-partially-
// applicable functions, mutable `mut`/`mut!` cells and dictionary-less
// trait dispatch by runtime type tag.
package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sunholo/noolang/internal/ast"
)

// Value is any Noolang runtime value.
type Value interface {
	TypeName() string
	String() string
}

type NumberValue struct{ Value float64 }

func (v *NumberValue) TypeName() string { return "Float" }
func (v *NumberValue) String() string   { return formatNumber(v.Value) }

func formatNumber(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

type StringValue struct{ Value string }

func (v *StringValue) TypeName() string { return "String" }
func (v *StringValue) String() string   { return v.Value }

type BoolValue struct{ Value bool }

func (v *BoolValue) TypeName() string { return "Bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "True"
	}
	return "False"
}

type UnitValue struct{}

func (v *UnitValue) TypeName() string { return "Unit" }
func (v *UnitValue) String() string   { return "{}" }

type ListValue struct{ Elements []Value }

func (v *ListValue) TypeName() string { return "List" }
func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type TupleValue struct{ Elements []Value }

func (v *TupleValue) TypeName() string { return "Tuple" }
func (v *TupleValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type RecordValue struct{ Fields map[string]Value }

func (v *RecordValue) TypeName() string { return "Record" }
func (v *RecordValue) String() string {
	names := make([]string, 0, len(v.Fields))
	for n := range v.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("@%s %s", n, v.Fields[n].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ConstructorValue is a variant constructor application at runtime —
// `None`, `Some 3`, `Ok {}`, `Err "boom"` — grounded on the teacher's
// TaggedValue.
type ConstructorValue struct {
	TypeName_ string // the variant's declared name, e.g. "Option"
	CtorName  string
	Args      []Value
}

func (v *ConstructorValue) TypeName() string { return v.TypeName_ }
func (v *ConstructorValue) String() string {
	if len(v.Args) == 0 {
		return v.CtorName
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return v.CtorName + " " + strings.Join(parts, " ")
}

// ClosureValue is a user-defined function value. Params may be a strict
// subset of the original FunctionExpr's params when it results from a
// partial application (apply.go).
type ClosureValue struct {
	Params []string
	Body   ast.Expr
	Env    *Environment
}

func (v *ClosureValue) TypeName() string { return "Function" }
func (v *ClosureValue) String() string   { return "<function>" }

// BuiltinValue is a host-implemented function: effectful primitives
// (print, readLine, ...), n-ary constructors and `@field` accessors alike.
type BuiltinValue struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (v *BuiltinValue) TypeName() string { return "Function" }
func (v *BuiltinValue) String() string   { return fmt.Sprintf("<builtin %s>", v.Name) }
