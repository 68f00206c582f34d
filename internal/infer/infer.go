package infer

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
	"github.com/sunholo/noolang/internal/types"
)

// Inferencer is the C8 state named in spec §4.8: a shared substitution, a
// fresh-variable counter, and the trait registry, threaded through one
// recursive descent over the program's expressions.
type Inferencer struct {
	State  *types.State
	Traits *traits.Registry
	Sub    types.Substitution
}

// New builds an inferencer backed by reg, which may already contain
// builtin trait definitions (e.g. Show) registered by LoadStdlib.
func New(reg *traits.Registry) *Inferencer {
	return &Inferencer{State: types.NewState(), Traits: reg, Sub: types.Substitution{}}
}

func (inf *Inferencer) fresh() *ast.VariableType { return inf.State.Fresh() }

func (inf *Inferencer) apply(t ast.Type) ast.Type { return types.Substitute(t, inf.Sub) }

func (inf *Inferencer) unify(a, b ast.Type, hint string) error {
	sub, err := types.UnifyHinted(a, b, inf.Sub, inf.Traits, hint)
	if err != nil {
		return err
	}
	inf.Sub = sub
	return nil
}

var arithmeticOps = map[string]bool{"-": true, "*": true, "/": true, "%": true}
var comparisonOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true}

// Infer implements the per-expression-kind typing rules of spec §4.8.
func (inf *Inferencer) Infer(env *Environment, expr ast.Expr) (ast.Type, ast.EffectSet, error) {
	switch e := expr.(type) {

	case *ast.NumberLiteral:
		return ast.FloatType(), ast.EffectSet{}, nil

	case *ast.StringLiteral:
		return ast.StringType(), ast.EffectSet{}, nil

	case *ast.Variable:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nil, fmt.Errorf("unbound variable: %s", e.Name)
		}
		return Instantiate(scheme, inf.State), ast.EffectSet{}, nil

	case *ast.ListExpr:
		elemType := ast.Type(inf.fresh())
		effs := ast.EffectSet{}
		for _, el := range e.Elements {
			t, eff, err := inf.Infer(env, el)
			if err != nil {
				return nil, nil, err
			}
			if err := inf.unify(elemType, t, types.HintPatternMatching); err != nil {
				return nil, nil, err
			}
			effs = effs.Union(eff)
		}
		return ast.ListTypeOf(inf.apply(elemType)), effs, nil

	case *ast.RecordExpr:
		fields := map[string]ast.Type{}
		effs := ast.EffectSet{}
		for _, f := range e.Fields {
			t, eff, err := inf.Infer(env, f.Value)
			if err != nil {
				return nil, nil, err
			}
			fields[f.Name] = t
			effs = effs.Union(eff)
		}
		return &ast.RecordType{Fields: fields}, effs, nil

	case *ast.TupleExpr:
		elems := make([]ast.Type, len(e.Elements))
		effs := ast.EffectSet{}
		for i, el := range e.Elements {
			t, eff, err := inf.Infer(env, el)
			if err != nil {
				return nil, nil, err
			}
			elems[i] = t
			effs = effs.Union(eff)
		}
		return &ast.TupleType{Elements: elems}, effs, nil

	case *ast.UnitExpr:
		return &ast.UnitType{}, ast.EffectSet{}, nil

	case *ast.AccessorExpr:
		alpha := inf.fresh()
		beta := ast.Type(inf.fresh())
		ret := beta
		if e.Safe {
			ret = ast.VariantTypeOf("Option", beta)
		}
		fnType := ast.FunctionTypeOf([]ast.Type{alpha}, ret, ast.EffectSet{})
		constrained := ast.NewConstrained(fnType, map[string][]ast.Constraint{
			alpha.Name: {&ast.HasFieldConstraint{TypeVar: alpha.Name, Field: e.Field, FieldType: beta}},
		})
		return constrained, ast.EffectSet{}, nil

	case *ast.FunctionExpr:
		return inf.inferFunction(env, e)

	case *ast.ApplicationExpr:
		return inf.inferApplication(env, e)

	case *ast.BinaryExpr:
		return inf.inferBinary(env, e)

	case *ast.PipelineExpr:
		return inf.inferPipeline(env, e)

	case *ast.IfExpr:
		condT, condEff, err := inf.Infer(env, e.Condition)
		if err != nil {
			return nil, nil, err
		}
		if err := inf.unify(condT, ast.BoolType(), types.HintIfBranches); err != nil {
			return nil, nil, err
		}
		thenT, thenEff, err := inf.Infer(env, e.Then)
		if err != nil {
			return nil, nil, err
		}
		elseT, elseEff, err := inf.Infer(env, e.Else)
		if err != nil {
			return nil, nil, err
		}
		if err := inf.unify(thenT, elseT, types.HintIfBranches); err != nil {
			return nil, nil, err
		}
		return inf.apply(thenT), condEff.Union(thenEff).Union(elseEff), nil

	case *ast.MatchExpr:
		return inf.inferMatch(env, e)

	case *ast.WhereExpr:
		curEnv := env
		effs := ast.EffectSet{}
		for _, d := range e.Defs {
			ne, _, eff, err := inf.inferStatement(curEnv, d)
			if err != nil {
				return nil, nil, err
			}
			curEnv = ne
			effs = effs.Union(eff)
		}
		t, eff, err := inf.Infer(curEnv, e.Main)
		if err != nil {
			return nil, nil, err
		}
		return t, effs.Union(eff), nil

	case *ast.DefinitionExpr, *ast.MutableDefinitionExpr, *ast.MutationExpr,
		*ast.TupleDestructuringExpr, *ast.RecordDestructuringExpr:
		_, t, eff, err := inf.inferStatement(env, expr)
		return t, eff, err

	case *ast.TypedExpr:
		t, eff, err := inf.Infer(env, e.Expr)
		if err != nil {
			return nil, nil, err
		}
		if err := inf.unify(t, e.Type, types.HintPatternMatching); err != nil {
			return nil, nil, err
		}
		return inf.apply(e.Type), eff, nil

	case *ast.ConstrainedExpr:
		t, eff, err := inf.Infer(env, e.Expr)
		if err != nil {
			return nil, nil, err
		}
		if err := inf.unify(t, e.Type, types.HintPatternMatching); err != nil {
			return nil, nil, err
		}
		if v, ok := inf.apply(e.Type).(*ast.VariableType); ok && e.Constraint != nil {
			v.Constraints = ast.DedupeConstraints(append(v.Constraints, e.Constraint))
		}
		return inf.apply(e.Type), eff, nil

	case *ast.ImportExpr:
		return inf.fresh(), ast.NewEffectSet("read"), nil

	case *ast.TypeDefinitionExpr, *ast.UserDefinedTypeExpr,
		*ast.ConstraintDefinitionExpr, *ast.ImplementDefinitionExpr:
		_, t, eff, err := inf.inferStatement(env, expr)
		return t, eff, err

	default:
		return nil, nil, fmt.Errorf("infer: unsupported expression %T", expr)
	}
}

func (inf *Inferencer) inferFunction(env *Environment, e *ast.FunctionExpr) (ast.Type, ast.EffectSet, error) {
	bodyEnv := env
	paramTypes := make([]ast.Type, len(e.Params))
	for i, name := range e.Params {
		v := inf.fresh()
		paramTypes[i] = v
		bodyEnv = bodyEnv.Extend(name, &ast.TypeScheme{Type: v})
	}
	bodyType, bodyEff, err := inf.Infer(bodyEnv, e.Body)
	if err != nil {
		return nil, nil, err
	}
	effects := bodyEff
	if declaredFn, ok := e.Declared.(*ast.FunctionType); ok {
		if len(declaredFn.Params) == len(paramTypes) {
			for i := range paramTypes {
				if err := inf.unify(paramTypes[i], declaredFn.Params[i], types.HintFunctionApp); err != nil {
					return nil, nil, err
				}
			}
		}
		if err := inf.unify(bodyType, declaredFn.Return, types.HintFunctionApp); err != nil {
			return nil, nil, err
		}
		if !bodyEff.Subset(declaredFn.Effects) {
			return nil, nil, fmt.Errorf("declared effects %s do not cover inferred effects %s", declaredFn.Effects, bodyEff)
		}
		effects = declaredFn.Effects
	}
	resolvedParams := make([]ast.Type, len(paramTypes))
	for i, p := range paramTypes {
		resolvedParams[i] = inf.apply(p)
	}
	return ast.FunctionTypeOf(resolvedParams, inf.apply(bodyType), effects), ast.EffectSet{}, nil
}

// structuralFunctorFns names the Functor/Monad entry points whose
// constrained argument (the container) isn't the first parameter, so they
// can't be typed through declareConstraint's ordinary single-scheme
// mechanism the way Show is: Noolang's type grammar has no way to write
// "f a" (a type variable applied to a type), so a truly generic `f a -> f
// b` signature can't be expressed. Typed structurally instead, the same
// way inferThrush handles Option/Result's shape directly rather than
// through a generic higher-kinded trait.
var structuralFunctorFns = map[string]bool{"map": true, "andThen": true}

func (inf *Inferencer) inferApplication(env *Environment, e *ast.ApplicationExpr) (ast.Type, ast.EffectSet, error) {
	if v, ok := e.Function.(*ast.Variable); ok && structuralFunctorFns[v.Name] {
		if _, bound := env.Lookup(v.Name); !bound {
			return inf.inferFunctorCall(env, v.Name, e)
		}
	}
	fnType, fnEff, err := inf.Infer(env, e.Function)
	if err != nil {
		return nil, nil, err
	}
	effs := fnEff
	current := inf.apply(fnType)
	for _, argExpr := range e.Args {
		argType, argEff, err := inf.Infer(env, argExpr)
		if err != nil {
			return nil, nil, err
		}
		effs = effs.Union(argEff)

		switch fn := current.(type) {
		case *ast.FunctionType:
			if len(fn.Params) == 0 {
				return nil, nil, fmt.Errorf("cannot apply a zero-argument function to more arguments")
			}
			if err := inf.unify(fn.Params[0], argType, types.HintFunctionApp); err != nil {
				return nil, nil, err
			}
			effs = effs.Union(fn.Effects)
			if len(fn.Params) == 1 {
				current = inf.apply(fn.Return)
			} else {
				current = ast.FunctionTypeOf(fn.Params[1:], fn.Return, fn.Effects)
			}
		case *ast.VariableType:
			ret := ast.Type(inf.fresh())
			shape := ast.FunctionTypeOf([]ast.Type{argType}, ret, ast.EffectSet{})
			if err := inf.unify(fn, shape, types.HintFunctionApp); err != nil {
				return nil, nil, err
			}
			current = inf.apply(ret)
		default:
			return nil, nil, fmt.Errorf("cannot apply a non-function type %s", types.ToString(current))
		}
	}
	return inf.apply(current), effs, nil
}

// inferFunctorCall types a call to `map`/`andThen` by looking at the
// container argument's own shape, rather than through a constrained type
// variable (see structuralFunctorFns). It requires the container's shape
// to already be known — a bare, still-unresolved type variable in that
// position is a type error here rather than a deferred obligation, since
// there is no ImplementsConstraint machinery backing these two names.
func (inf *Inferencer) inferFunctorCall(env *Environment, name string, e *ast.ApplicationExpr) (ast.Type, ast.EffectSet, error) {
	if len(e.Args) != 2 {
		return nil, nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(e.Args))
	}
	fnArgType, fnEff, err := inf.Infer(env, e.Args[0])
	if err != nil {
		return nil, nil, err
	}
	containerType, cEff, err := inf.Infer(env, e.Args[1])
	if err != nil {
		return nil, nil, err
	}
	effs := fnEff.Union(cEff)
	container := inf.apply(containerType)

	a, b := inf.fresh(), inf.fresh()
	var resultElem ast.Type
	var rebuild func(elem ast.Type) ast.Type

	switch c := container.(type) {
	case *ast.ListType:
		resultElem, rebuild = c.Element, func(elem ast.Type) ast.Type { return ast.ListTypeOf(elem) }

	case *ast.VariantType:
		switch c.Name {
		case "Option":
			if len(c.Args) != 1 {
				return nil, nil, fmt.Errorf("%s: malformed Option type", name)
			}
			resultElem, rebuild = c.Args[0], func(elem ast.Type) ast.Type { return ast.VariantTypeOf("Option", elem) }
		case "Result":
			if len(c.Args) != 2 {
				return nil, nil, fmt.Errorf("%s: malformed Result type", name)
			}
			errType := c.Args[0]
			resultElem, rebuild = c.Args[1], func(elem ast.Type) ast.Type { return ast.VariantTypeOf("Result", errType, elem) }
		default:
			return nil, nil, fmt.Errorf("No implementation of %s for %s", name, c.Name)
		}

	default:
		return nil, nil, fmt.Errorf("%s requires a List, Option, or Result as its container argument, got %s", name, types.ToString(container))
	}

	var expectedFnType ast.Type
	if name == "andThen" {
		// andThen's mapping function itself returns a container of the
		// same shape: `(a -> f b) -> f a -> f b`.
		expectedFnType = ast.FunctionTypeOf([]ast.Type{a}, rebuild(b), ast.EffectSet{})
	} else {
		expectedFnType = ast.FunctionTypeOf([]ast.Type{a}, b, ast.EffectSet{})
	}
	if err := inf.unify(fnArgType, expectedFnType, types.HintFunctionApp); err != nil {
		return nil, nil, err
	}
	if err := inf.unify(resultElem, a, types.HintFunctionApp); err != nil {
		return nil, nil, err
	}
	if fnType, ok := inf.apply(fnArgType).(*ast.FunctionType); ok {
		effs = effs.Union(fnType.Effects)
	}
	return inf.apply(rebuild(b)), effs, nil
}

func (inf *Inferencer) inferBinary(env *Environment, e *ast.BinaryExpr) (ast.Type, ast.EffectSet, error) {
	switch e.Operator {
	case ";":
		newEnv, _, eff1, err := inf.inferStatement(env, e.Left)
		if err != nil {
			return nil, nil, err
		}
		t2, eff2, err := inf.Infer(newEnv, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return t2, eff1.Union(eff2), nil

	case "$":
		lt, leff, err := inf.Infer(env, e.Left)
		if err != nil {
			return nil, nil, err
		}
		rt, reff, err := inf.Infer(env, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return inf.applyOne(lt, rt, leff.Union(reff), types.HintFunctionApp)

	case "|":
		return inf.inferThrush(env, e, false)
	case "|?":
		return inf.inferThrush(env, e, true)

	case "+":
		return inf.inferPlus(env, e)

	default:
		if arithmeticOps[e.Operator] {
			lt, leff, err := inf.Infer(env, e.Left)
			if err != nil {
				return nil, nil, err
			}
			rt, reff, err := inf.Infer(env, e.Right)
			if err != nil {
				return nil, nil, err
			}
			if err := inf.unify(lt, ast.FloatType(), types.HintOperatorApp); err != nil {
				return nil, nil, err
			}
			if err := inf.unify(rt, ast.FloatType(), types.HintOperatorApp); err != nil {
				return nil, nil, err
			}
			return ast.FloatType(), leff.Union(reff), nil
		}
		if comparisonOps[e.Operator] {
			lt, leff, err := inf.Infer(env, e.Left)
			if err != nil {
				return nil, nil, err
			}
			rt, reff, err := inf.Infer(env, e.Right)
			if err != nil {
				return nil, nil, err
			}
			if err := inf.unify(lt, rt, types.HintOperatorApp); err != nil {
				return nil, nil, err
			}
			return ast.BoolType(), leff.Union(reff), nil
		}
		return nil, nil, fmt.Errorf("infer: unsupported operator %q", e.Operator)
	}
}

// inferPlus types `+`: Float+Float is addition, String+String is concat
// (spec §4.9/§8 scenario 2); any other combination, including a Float and
// a String, is a type error (§8 scenario 3).
func (inf *Inferencer) inferPlus(env *Environment, e *ast.BinaryExpr) (ast.Type, ast.EffectSet, error) {
	lt, leff, err := inf.Infer(env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	rt, reff, err := inf.Infer(env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	effs := leff.Union(reff)

	if traits.GetTypeName(inf.apply(lt)) == "String" || traits.GetTypeName(inf.apply(rt)) == "String" {
		if err := inf.unify(lt, ast.StringType(), types.HintOperatorApp); err != nil {
			return nil, nil, err
		}
		if err := inf.unify(rt, ast.StringType(), types.HintOperatorApp); err != nil {
			return nil, nil, err
		}
		return ast.StringType(), effs, nil
	}
	if err := inf.unify(lt, ast.FloatType(), types.HintOperatorApp); err != nil {
		return nil, nil, err
	}
	if err := inf.unify(rt, ast.FloatType(), types.HintOperatorApp); err != nil {
		return nil, nil, err
	}
	return ast.FloatType(), effs, nil
}

// applyOne is `f x` as a value, used by the `$` operator and the thrush
// operators — the single-argument application helper.
func (inf *Inferencer) applyOne(fnT, argT ast.Type, eff ast.EffectSet, hint string) (ast.Type, ast.EffectSet, error) {
	ret := ast.Type(inf.fresh())
	shape := ast.FunctionTypeOf([]ast.Type{argT}, ret, ast.EffectSet{})
	if err := inf.unify(fnT, shape, hint); err != nil {
		return nil, nil, err
	}
	if fn, ok := inf.apply(fnT).(*ast.FunctionType); ok {
		eff = eff.Union(fn.Effects)
	}
	return inf.apply(ret), eff, nil
}

// inferThrush types `value | fn`. The safe `|?` variant short-circuits on
// `None`/`Err e` instead of applying fn: spec §9's Open Question on `|?`
// dispatch is resolved structurally here rather than through a trait,
// since Option/Result's "container" shape (`Name a` with the payload in
// the last type argument) is fixed and known without needing a
// user-extensible, higher-kinded Monad abstraction that Noolang's flat
// VariantType can't express anyway.
func (inf *Inferencer) inferThrush(env *Environment, e *ast.BinaryExpr, safe bool) (ast.Type, ast.EffectSet, error) {
	lt, leff, err := inf.Infer(env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	rt, reff, err := inf.Infer(env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	effs := leff.Union(reff)
	if !safe {
		return inf.applyOne(rt, lt, effs, types.HintFunctionApp)
	}

	resolvedL := inf.apply(lt)
	variant, ok := resolvedL.(*ast.VariantType)
	if !ok || (variant.Name != "Option" && variant.Name != "Result") || len(variant.Args) == 0 {
		return nil, nil, fmt.Errorf("'|?' requires an Option or Result on the left, got %s", types.ToString(resolvedL))
	}
	payload := variant.Args[len(variant.Args)-1]
	retPayload := ast.Type(inf.fresh())
	shape := ast.FunctionTypeOf([]ast.Type{payload}, retPayload, ast.EffectSet{})
	if err := inf.unify(rt, shape, types.HintFunctionApp); err != nil {
		return nil, nil, err
	}
	if fn, ok := inf.apply(rt).(*ast.FunctionType); ok {
		effs = effs.Union(fn.Effects)
	}
	newArgs := append([]ast.Type{}, variant.Args[:len(variant.Args)-1]...)
	newArgs = append(newArgs, inf.apply(retPayload))
	return ast.VariantTypeOf(variant.Name, newArgs...), effs, nil
}

func (inf *Inferencer) inferPipeline(env *Environment, e *ast.PipelineExpr) (ast.Type, ast.EffectSet, error) {
	current, effs, err := inf.Infer(env, e.Initial)
	if err != nil {
		return nil, nil, err
	}
	for _, step := range e.Steps {
		stepT, stepEff, err := inf.Infer(env, step.Expr)
		if err != nil {
			return nil, nil, err
		}
		effs = effs.Union(stepEff)
		switch step.Operator {
		case "|>":
			current, effs, err = inf.applyOne(stepT, current, effs, types.HintFunctionApp)
		case "<|":
			current, effs, err = inf.applyOne(current, stepT, effs, types.HintFunctionApp)
		default:
			return nil, nil, fmt.Errorf("infer: unsupported pipeline operator %q", step.Operator)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return current, effs, nil
}
