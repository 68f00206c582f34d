package ast

// TypeScheme is `∀ vars. type` — how definitions are stored in the
// environment (spec §3.2). Schemes only appear in the environment; values
// carry plain, non-scheme Types.
type TypeScheme struct {
	QuantifiedVars []string
	Type           Type
}

// Monomorphic wraps a type with no quantified variables — the scheme used
// for mutable definitions and lambda parameters (spec §4.8).
func Monomorphic(t Type) *TypeScheme {
	return &TypeScheme{Type: t}
}
