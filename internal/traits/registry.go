// Package traits implements the Trait Registry (spec §4.7, component C7):
// trait definitions, their implementations keyed by concrete type name, and
// the ambiguity-aware function resolver the type inferencer and evaluator
// both share. It is the one piece of mutable state passed by reference
// through the whole pipeline (spec §5) — built once per program, then
// mutated only by `constraint`/`implement` statements in source order.
package traits

import (
	"fmt"
	"sort"

	"github.com/sunholo/noolang/internal/ast"
)

// Definition is one `constraint Name v… (fn : type; …)` declaration.
type Definition struct {
	Name      string
	TypeParam string
	Functions map[string]ast.Type
	// DispatchArg is the 0-based argument position whose runtime type
	// picks the implementation (spec §4.7's dictionary-less dispatch).
	// Zero for every trait whose constrained type is the first parameter
	// (Show's `show : a -> String`); Functor/Monad set it to 1 since
	// `map`/`andThen` take the mapping function first and the container
	// second.
	DispatchArg int
}

// Implementation is one `implement Trait TypeExpr [given G] (fn = expr; …)`
// declaration, resolved down to the concrete type name it applies to.
type Implementation struct {
	TypeName  string
	Functions map[string]ast.Expr
	Given     ast.Constraint // nil if unconditional
}

// Registry holds every trait definition and implementation seen so far.
type Registry struct {
	definitions     map[string]*Definition
	implementations map[string]map[string]*Implementation // trait -> typeName -> impl
	functionTraits  map[string]map[string]bool             // funcName -> set of trait names
}

// New builds an empty registry. initializeBuiltins/loadStdlib (component
// C8's bootstrap, spec §4.8/§9) populate it before user code runs.
func New() *Registry {
	return &Registry{
		definitions:     map[string]*Definition{},
		implementations: map[string]map[string]*Implementation{},
		functionTraits:  map[string]map[string]bool{},
	}
}

// AddTraitDefinition inserts a definition and its (initially empty)
// implementation map, updating the functionTraits inverse index.
func (r *Registry) AddTraitDefinition(def *Definition) error {
	r.definitions[def.Name] = def
	if _, ok := r.implementations[def.Name]; !ok {
		r.implementations[def.Name] = map[string]*Implementation{}
	}
	for fn := range def.Functions {
		if r.functionTraits[fn] == nil {
			r.functionTraits[fn] = map[string]bool{}
		}
		r.functionTraits[fn][def.Name] = true
	}
	return nil
}

// Definition looks up a trait definition by name.
func (r *Registry) Definition(name string) (*Definition, bool) {
	d, ok := r.definitions[name]
	return d, ok
}

// AddTraitImplementation validates and registers one implementation.
// Per spec §4.7: the trait must be defined, every supplied function name
// must belong to the trait, lambda-valued implementations must match the
// signature's declared arity (bare variable references are accepted
// unchecked since their arity isn't known until they're resolved), and
// duplicate (trait, typeName) pairs are rejected.
func (r *Registry) AddTraitImplementation(traitName string, impl *Implementation) error {
	def, ok := r.definitions[traitName]
	if !ok {
		return fmt.Errorf("cannot implement undefined trait %q", traitName)
	}
	for fnName, val := range impl.Functions {
		sig, ok := def.Functions[fnName]
		if !ok {
			return fmt.Errorf("function %q is not declared in trait %q", fnName, traitName)
		}
		if lambda, ok := val.(*ast.FunctionExpr); ok {
			sigFn, ok := sig.(*ast.FunctionType)
			if ok && len(lambda.Params) != len(sigFn.Params) {
				return fmt.Errorf("implementation of %q.%s has %d parameters, trait signature declares %d",
					traitName, fnName, len(lambda.Params), len(sigFn.Params))
			}
		}
	}
	if _, ok := r.implementations[traitName][impl.TypeName]; ok {
		return fmt.Errorf("duplicate implementation of trait %q for type %q", traitName, impl.TypeName)
	}
	r.implementations[traitName][impl.TypeName] = impl
	for fnName := range impl.Functions {
		if r.functionTraits[fnName] == nil {
			r.functionTraits[fnName] = map[string]bool{}
		}
		r.functionTraits[fnName][traitName] = true
	}
	return nil
}

// HasImplementation reports whether trait has a (possibly conditional)
// implementation for typeName — the check behind the unifier's
// constraint-collapse bridge (spec §4.6 step 3/6).
func (r *Registry) HasImplementation(traitName, typeName string) bool {
	impls, ok := r.implementations[traitName]
	if !ok {
		return false
	}
	_, ok = impls[typeName]
	return ok
}

// Implementation returns the stored implementation, if any.
func (r *Registry) Implementation(traitName, typeName string) (*Implementation, bool) {
	impls, ok := r.implementations[traitName]
	if !ok {
		return nil, false
	}
	impl, ok := impls[typeName]
	return impl, ok
}

// IsTraitFunction reports whether name is declared by at least one trait.
func (r *Registry) IsTraitFunction(name string) bool {
	traits, ok := r.functionTraits[name]
	return ok && len(traits) > 0
}

// DispatchArgIndex reports which argument of a call to name picks the
// runtime dispatch type, per whichever trait declares name (functions are
// not overloaded across traits with conflicting dispatch positions in
// practice, so the first declaring trait found wins). Defaults to 0 for
// names no trait declares.
func (r *Registry) DispatchArgIndex(name string) int {
	for traitName := range r.functionTraits[name] {
		if def, ok := r.definitions[traitName]; ok {
			return def.DispatchArg
		}
	}
	return 0
}

// AmbiguousCallError is raised when more than one trait implements the same
// function name for the same concrete type (spec §4.7 / property P6).
type AmbiguousCallError struct {
	FuncName string
	TypeName string
	Traits   []string
}

func (e *AmbiguousCallError) Error() string {
	return fmt.Sprintf("ambiguous function call: %s for %s (implemented by %v)", e.FuncName, e.TypeName, e.Traits)
}

// NoImplementationError is raised when no trait implements name for typeName.
type NoImplementationError struct {
	FuncName string
	TypeName string
}

func (e *NoImplementationError) Error() string {
	return fmt.Sprintf("No implementation of %s for %s", e.FuncName, e.TypeName)
}

// Resolution is what ResolveTraitFunction returns on success.
type Resolution struct {
	TraitName string
	TypeName  string
	Impl      *Implementation
}

// ResolveTraitFunction picks the implementation of name for typeName,
// raising AmbiguousCallError if more than one trait implements name for
// that exact type (spec §4.7, the "conflicting functions" safety check).
func (r *Registry) ResolveTraitFunction(name, typeName string) (*Resolution, error) {
	candidateTraits, ok := r.functionTraits[name]
	if !ok {
		return nil, &NoImplementationError{FuncName: name, TypeName: typeName}
	}
	var matches []string
	for traitName := range candidateTraits {
		if r.HasImplementation(traitName, typeName) {
			matches = append(matches, traitName)
		}
	}
	sort.Strings(matches)
	switch len(matches) {
	case 0:
		return nil, &NoImplementationError{FuncName: name, TypeName: typeName}
	case 1:
		impl, _ := r.Implementation(matches[0], typeName)
		return &Resolution{TraitName: matches[0], TypeName: typeName, Impl: impl}, nil
	default:
		return nil, &AmbiguousCallError{FuncName: name, TypeName: typeName, Traits: matches}
	}
}

// GetTypeName implements spec §4.7's naming function used both to bridge
// constraints during unification and to dispatch trait calls by argument
// type.
func GetTypeName(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.PrimitiveType:
		return tt.Name
	case *ast.ListType:
		return "List"
	case *ast.VariantType:
		return tt.Name
	case *ast.FunctionType:
		return "Function"
	case *ast.TupleType:
		return "Tuple"
	case *ast.RecordType:
		return "Record"
	case *ast.UnitType:
		return "Unit"
	case *ast.VariableType:
		return tt.Name
	case *ast.ConstrainedType:
		return GetTypeName(tt.BaseType)
	default:
		return ""
	}
}
