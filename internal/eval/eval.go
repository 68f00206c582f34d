package eval

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
)

// Evaluator carries the trait registry shared with the type inferencer
// (populated by the time evaluation starts, spec §5's single pipeline) and
// the most recently extended top-level environment, used to resolve trait
// method bodies — an `implement Show Float (...)`'s lambda is evaluated in
// whatever top-level names are visible at the point it runs, same as any
// other statement, grounded on the teacher's SimpleEvaluator threading one
// mutable e.env field across evalFile's declaration loop.
type Evaluator struct {
	Traits *traits.Registry
	Global *Environment
}

// New builds an Evaluator sharing reg with an already-run type inferencer.
func New(reg *traits.Registry) *Evaluator {
	return &Evaluator{Traits: reg, Global: NewEnvironment()}
}

// Eval evaluates a single expression in env (spec §4.9's dispatch table).
func (ev *Evaluator) Eval(env *Environment, expr ast.Expr) (Value, error) {
	switch e := expr.(type) {

	case *ast.NumberLiteral:
		return &NumberValue{Value: e.Value}, nil

	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil

	case *ast.Variable:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, runtimeErrorf(e.Location, "unbound variable: %s", e.Name)
		}
		return v, nil

	case *ast.ListExpr:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := ev.Eval(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ListValue{Elements: elems}, nil

	case *ast.TupleExpr:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := ev.Eval(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &TupleValue{Elements: elems}, nil

	case *ast.RecordExpr:
		fields := make(map[string]Value, len(e.Fields))
		for _, f := range e.Fields {
			v, err := ev.Eval(env, f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return &RecordValue{Fields: fields}, nil

	case *ast.UnitExpr:
		return &UnitValue{}, nil

	case *ast.AccessorExpr:
		return ev.evalAccessor(e), nil

	case *ast.FunctionExpr:
		return &ClosureValue{Params: e.Params, Body: e.Body, Env: env}, nil

	case *ast.ApplicationExpr:
		args := make([]Value, len(e.Args))
		for i, a := range e.Args {
			v, err := ev.Eval(env, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		if name, isTraitCall := traitFunctionName(env, ev.Traits, e.Function); isTraitCall {
			fn, err := ev.resolveTraitFunction(name, args, e.Location)
			if err != nil {
				return nil, err
			}
			return ev.apply(e.Location, fn, args)
		}
		fn, err := ev.Eval(env, e.Function)
		if err != nil {
			return nil, err
		}
		return ev.apply(e.Location, fn, args)

	case *ast.BinaryExpr:
		return ev.evalBinary(env, e)

	case *ast.PipelineExpr:
		return ev.evalPipeline(env, e)

	case *ast.IfExpr:
		cond, err := ev.Eval(env, e.Condition)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(*BoolValue)
		if !ok {
			return nil, runtimeErrorf(e.Location, "if condition must be Bool, got %s", cond.TypeName())
		}
		if b.Value {
			return ev.Eval(env, e.Then)
		}
		return ev.Eval(env, e.Else)

	case *ast.MatchExpr:
		return ev.evalMatch(env, e)

	case *ast.WhereExpr:
		cur := env
		for _, d := range e.Defs {
			var err error
			cur, _, err = ev.evalStatement(cur, d)
			if err != nil {
				return nil, err
			}
		}
		return ev.Eval(cur, e.Main)

	case *ast.DefinitionExpr, *ast.MutableDefinitionExpr, *ast.MutationExpr,
		*ast.TupleDestructuringExpr, *ast.RecordDestructuringExpr,
		*ast.TypeDefinitionExpr, *ast.UserDefinedTypeExpr,
		*ast.ConstraintDefinitionExpr, *ast.ImplementDefinitionExpr:
		_, v, err := ev.evalStatement(env, expr)
		return v, err

	case *ast.TypedExpr:
		return ev.Eval(env, e.Expr)

	case *ast.ConstrainedExpr:
		return ev.Eval(env, e.Expr)

	case *ast.ImportExpr:
		return nil, runtimeErrorf(e.Location, "import is not supported by this evaluator")

	default:
		return nil, fmt.Errorf("eval: unsupported expression %T", expr)
	}
}

// evalAccessor builds the field-getter function value `@field`/`@field?`
// evaluates to — applying it is an ordinary ApplicationExpr.
func (ev *Evaluator) evalAccessor(e *ast.AccessorExpr) Value {
	field := e.Field
	safe := e.Safe
	return &BuiltinValue{Name: "@" + field, Arity: 1, Fn: func(args []Value) (Value, error) {
		rec, ok := args[0].(*RecordValue)
		if !ok {
			return nil, runtimeErrorf(e.Location, "cannot access field %s on non-record value %s", field, args[0].TypeName())
		}
		v, ok := rec.Fields[field]
		if !safe {
			if !ok {
				return nil, runtimeErrorf(e.Location, "record has no field %q", field)
			}
			return v, nil
		}
		if !ok {
			return &ConstructorValue{TypeName_: "Option", CtorName: "None"}, nil
		}
		return &ConstructorValue{TypeName_: "Option", CtorName: "Some", Args: []Value{v}}, nil
	}}
}
