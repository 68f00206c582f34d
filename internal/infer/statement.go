package infer

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
	"github.com/sunholo/noolang/internal/traits"
	"github.com/sunholo/noolang/internal/types"
)

// inferStatement handles every expression kind that can extend the
// environment for whatever follows it — Definition, MutableDefinition,
// Mutation, destructuring, and the three declaration forms (variant/type,
// constraint, implement). Program and WhereExpr both fold over their
// statement lists through this; a BinaryExpr `;`'s left operand goes
// through it too, since `x = 1; x + 1` must see `x` on the right.
func (inf *Inferencer) inferStatement(env *Environment, stmt ast.Expr) (*Environment, ast.Type, ast.EffectSet, error) {
	switch s := stmt.(type) {

	case *ast.DefinitionExpr:
		placeholder := inf.fresh()
		recEnv := env.Extend(s.Name, &ast.TypeScheme{Type: placeholder})
		vType, vEff, err := inf.Infer(recEnv, s.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := inf.unify(placeholder, vType, types.HintPatternMatching); err != nil {
			return nil, nil, nil, err
		}
		generalized := inf.apply(vType)
		scheme := Generalize(env, generalized)
		// The definition itself types to Unit (spec §4.8); its value's type
		// lives on in the scheme bound into the environment, not in the
		// statement's own result.
		return env.Extend(s.Name, scheme), &ast.UnitType{}, vEff, nil

	case *ast.MutableDefinitionExpr:
		vType, vEff, err := inf.Infer(env, s.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		// Mutable bindings are monomorphic: generalizing them would let two
		// mutations at different instantiated types both typecheck.
		return env.ExtendMutable(s.Name, &ast.TypeScheme{Type: inf.apply(vType)}), inf.apply(vType), vEff, nil

	case *ast.MutationExpr:
		if !env.IsMutable(s.Name) {
			return nil, nil, nil, fmt.Errorf("cannot mutate non-mutable name: %s", s.Name)
		}
		scheme, _ := env.Lookup(s.Name)
		vType, vEff, err := inf.Infer(env, s.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := inf.unify(scheme.Type, vType, types.HintPatternMatching); err != nil {
			return nil, nil, nil, err
		}
		return env, &ast.UnitType{}, vEff.Union(ast.NewEffectSet("state")), nil

	case *ast.TupleDestructuringExpr:
		vType, vEff, err := inf.Infer(env, s.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		elemVars := make([]ast.Type, len(s.Names))
		for i := range elemVars {
			elemVars[i] = inf.fresh()
		}
		if err := inf.unify(vType, &ast.TupleType{Elements: elemVars}, types.HintPatternMatching); err != nil {
			return nil, nil, nil, err
		}
		newEnv := env
		for i, name := range s.Names {
			newEnv = newEnv.Extend(name, Generalize(env, inf.apply(elemVars[i])))
		}
		return newEnv, &ast.UnitType{}, vEff, nil

	case *ast.RecordDestructuringExpr:
		vType, vEff, err := inf.Infer(env, s.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		fieldVars := map[string]ast.Type{}
		for _, name := range s.Fields {
			fieldVars[name] = inf.fresh()
		}
		if err := inf.unify(vType, &ast.RecordType{Fields: fieldVars}, types.HintPatternMatching); err != nil {
			return nil, nil, nil, err
		}
		newEnv := env
		for _, name := range s.Fields {
			newEnv = newEnv.Extend(name, Generalize(env, inf.apply(fieldVars[name])))
		}
		return newEnv, &ast.UnitType{}, vEff, nil

	case *ast.TypeDefinitionExpr:
		return inf.declareVariant(env, s)

	case *ast.UserDefinedTypeExpr:
		// Type aliases introduce no runtime constructors and no new
		// bindings; they only matter to parseType resolving the name later.
		return env, &ast.UnitType{}, ast.EffectSet{}, nil

	case *ast.ConstraintDefinitionExpr:
		return inf.declareConstraint(env, s)

	case *ast.ImplementDefinitionExpr:
		return inf.declareImplement(env, s)

	default:
		t, eff, err := inf.Infer(env, stmt)
		return env, t, eff, err
	}
}

func (inf *Inferencer) declareVariant(env *Environment, s *ast.TypeDefinitionExpr) (*Environment, ast.Type, ast.EffectSet, error) {
	newEnv := env
	typeParamTypes := make([]ast.Type, len(s.TypeParams))
	for i, tp := range s.TypeParams {
		typeParamTypes[i] = &ast.VariableType{Name: tp}
	}
	resultType := ast.VariantTypeOf(s.Name, typeParamTypes...)
	for _, ctor := range s.Constructors {
		var ctorType ast.Type = resultType
		if len(ctor.Args) > 0 {
			ctorType = ast.FunctionTypeOf(ctor.Args, resultType, ast.EffectSet{})
		}
		newEnv = newEnv.Extend(ctor.Name, &ast.TypeScheme{QuantifiedVars: s.TypeParams, Type: ctorType})
	}
	return newEnv, &ast.UnitType{}, ast.EffectSet{}, nil
}

func (inf *Inferencer) declareConstraint(env *Environment, s *ast.ConstraintDefinitionExpr) (*Environment, ast.Type, ast.EffectSet, error) {
	def := &traits.Definition{Name: s.Name, Functions: map[string]ast.Type{}}
	if len(s.TypeParams) > 0 {
		def.TypeParam = s.TypeParams[0]
	}
	for _, sig := range s.Signatures {
		def.Functions[sig.Name] = sig.Type
	}
	if err := inf.Traits.AddTraitDefinition(def); err != nil {
		return nil, nil, nil, err
	}
	newEnv := env
	for _, sig := range s.Signatures {
		scheme := &ast.TypeScheme{
			QuantifiedVars: s.TypeParams,
			Type: ast.NewConstrained(sig.Type, map[string][]ast.Constraint{
				def.TypeParam: {&ast.ImplementsConstraint{TypeVar: def.TypeParam, Trait: s.Name}},
			}),
		}
		newEnv = newEnv.Extend(sig.Name, scheme)
	}
	return newEnv, &ast.UnitType{}, ast.EffectSet{}, nil
}

func (inf *Inferencer) declareImplement(env *Environment, s *ast.ImplementDefinitionExpr) (*Environment, ast.Type, ast.EffectSet, error) {
	def, ok := inf.Traits.Definition(s.Trait)
	if !ok {
		return nil, nil, nil, fmt.Errorf("cannot implement undefined trait %q", s.Trait)
	}
	implEnv := env
	if s.Given != nil {
		// The given clause adds nothing to the environment the methods are
		// checked in. It is stored on the Implementation, but neither the
		// registry nor a call site reads it, so a conditional
		// implementation is used exactly like an unconditional one.
		implEnv = env
	}
	methodExprs := map[string]ast.Expr{}
	for _, m := range s.Methods {
		sig, ok := def.Functions[m.Name]
		if !ok {
			return nil, nil, nil, fmt.Errorf("function %q is not declared in trait %q", m.Name, s.Trait)
		}
		expectedType := types.Substitute(sig, types.Substitution{def.TypeParam: s.TargetType})
		gotType, _, err := inf.Infer(implEnv, m.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := inf.unify(gotType, expectedType, types.HintFunctionApp); err != nil {
			return nil, nil, nil, err
		}
		methodExprs[m.Name] = m.Value
	}
	impl := &traits.Implementation{
		TypeName:  traits.GetTypeName(s.TargetType),
		Functions: methodExprs,
		Given:     s.Given,
	}
	if err := inf.Traits.AddTraitImplementation(s.Trait, impl); err != nil {
		return nil, nil, nil, err
	}
	return env, &ast.UnitType{}, ast.EffectSet{}, nil
}
