package eval

import (
	"github.com/sunholo/noolang/internal/ast"
)

func (ev *Evaluator) evalMatch(env *Environment, e *ast.MatchExpr) (Value, error) {
	scrutinee, err := ev.Eval(env, e.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, c := range e.Cases {
		if caseEnv, ok := matchPattern(env, c.Pattern, scrutinee); ok {
			return ev.Eval(caseEnv, c.Body)
		}
	}
	return nil, runtimeErrorf(e.Location, "no pattern matched value %s", scrutinee.String())
}

// evalStatement mirrors infer.inferStatement: it handles every expression
// kind that can extend the environment for whatever follows, returning the
// (possibly extended) environment alongside the statement's own value.
func (ev *Evaluator) evalStatement(env *Environment, stmt ast.Expr) (*Environment, Value, error) {
	switch s := stmt.(type) {

	case *ast.DefinitionExpr:
		cell := new(Value)
		recEnv := env.extendCell(s.Name, cell)
		v, err := ev.Eval(recEnv, s.Value)
		if err != nil {
			return nil, nil, err
		}
		*cell = v
		return recEnv, v, nil

	case *ast.MutableDefinitionExpr:
		v, err := ev.Eval(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		return env.Extend(s.Name, v), v, nil

	case *ast.MutationExpr:
		v, err := ev.Eval(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		if !env.SetExisting(s.Name, v) {
			return nil, nil, runtimeErrorf(s.Location, "cannot mutate undefined name: %s", s.Name)
		}
		return env, &UnitValue{}, nil

	case *ast.TupleDestructuringExpr:
		v, err := ev.Eval(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		tup, ok := v.(*TupleValue)
		if !ok || len(tup.Elements) != len(s.Names) {
			return nil, nil, runtimeErrorf(s.Location, "cannot destructure %s into %d names", v.TypeName(), len(s.Names))
		}
		newEnv := env
		for i, name := range s.Names {
			newEnv = newEnv.Extend(name, tup.Elements[i])
		}
		return newEnv, &UnitValue{}, nil

	case *ast.RecordDestructuringExpr:
		v, err := ev.Eval(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		rec, ok := v.(*RecordValue)
		if !ok {
			return nil, nil, runtimeErrorf(s.Location, "cannot destructure %s as a record", v.TypeName())
		}
		newEnv := env
		for _, name := range s.Fields {
			fv, ok := rec.Fields[name]
			if !ok {
				return nil, nil, runtimeErrorf(s.Location, "record has no field %q", name)
			}
			newEnv = newEnv.Extend(name, fv)
		}
		return newEnv, &UnitValue{}, nil

	case *ast.TypeDefinitionExpr:
		newEnv := env
		for _, ctor := range s.Constructors {
			name, typeName, arity := ctor.Name, s.Name, len(ctor.Args)
			if arity == 0 {
				newEnv = newEnv.Extend(name, &ConstructorValue{TypeName_: typeName, CtorName: name})
				continue
			}
			newEnv = newEnv.Extend(name, &BuiltinValue{Name: name, Arity: arity, Fn: func(args []Value) (Value, error) {
				return &ConstructorValue{TypeName_: typeName, CtorName: name, Args: args}, nil
			}})
		}
		return newEnv, &UnitValue{}, nil

	case *ast.UserDefinedTypeExpr:
		return env, &UnitValue{}, nil

	case *ast.ConstraintDefinitionExpr:
		// No runtime value to bind: calls to a trait function dispatch on
		// the runtime type of the argument at the trait's dispatch position
		// (trait_dispatch.go) rather than going through an ordinary
		// environment lookup.
		return env, &UnitValue{}, nil

	case *ast.ImplementDefinitionExpr:
		// The type inferencer already registered this implementation's
		// method bodies (as unevaluated ast.Expr) into the shared trait
		// registry during TypeProgram; trait_dispatch.go evaluates them
		// lazily, in ev.Global, each time a call needs them.
		return env, &UnitValue{}, nil

	default:
		v, err := ev.Eval(env, stmt)
		return env, v, err
	}
}
