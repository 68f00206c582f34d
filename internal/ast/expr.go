package ast

// Expr is the tagged union of expression nodes (spec §3.3). Noolang is
// expression-oriented: definitions, matches, and even `where` clauses are
// expressions, not statements.
type Expr interface {
	Node
	exprNode()
}

// NumberLiteral — Float is the only numeric type; integer syntax and real
// syntax both produce a NumberLiteral.
type NumberLiteral struct {
	Value float64
	Location
}

func (*NumberLiteral) exprNode()   {}
func (e *NumberLiteral) Loc() Location { return e.Location }

type StringLiteral struct {
	Value string
	Location
}

func (*StringLiteral) exprNode()   {}
func (e *StringLiteral) Loc() Location { return e.Location }

// Variable references a binding by name.
type Variable struct {
	Name string
	Location
}

func (*Variable) exprNode()   {}
func (e *Variable) Loc() Location { return e.Location }

// ListExpr is `[e1, e2, ...]`.
type ListExpr struct {
	Elements []Expr
	Location
}

func (*ListExpr) exprNode()   {}
func (e *ListExpr) Loc() Location { return e.Location }

// RecordExpr is `{@name expr, ...}`; all fields named (spec §3.5).
type RecordExpr struct {
	Fields []RecordField
	Location
}

type RecordField struct {
	Name  string
	Value Expr
}

func (*RecordExpr) exprNode()   {}
func (e *RecordExpr) Loc() Location { return e.Location }

// TupleExpr is `{e1, e2, ...}`; all fields positional.
type TupleExpr struct {
	Elements []Expr
	Location
}

func (*TupleExpr) exprNode()   {}
func (e *TupleExpr) Loc() Location { return e.Location }

// UnitExpr is `{}` with zero fields.
type UnitExpr struct{ Location }

func (*UnitExpr) exprNode()   {}
func (e *UnitExpr) Loc() Location { return e.Location }

// AccessorExpr is `@field` or the safe variant `@field?`.
type AccessorExpr struct {
	Field string
	Safe  bool
	Location
}

func (*AccessorExpr) exprNode()   {}
func (e *AccessorExpr) Loc() Location { return e.Location }

// FunctionExpr is `fn p1 p2 => body`, optionally annotated with declared
// effects (from a hoisted postfix type annotation, spec §4.4).
type FunctionExpr struct {
	Params      []string
	Body        Expr
	Declared    Type // nil unless a lambda expression was annotated, as in `(fn ps => body) : T`
	Doc         string
	Location
}

func (*FunctionExpr) exprNode()   {}
func (e *FunctionExpr) Loc() Location { return e.Location }

// ApplicationExpr is left-to-right juxtaposition `f a b`.
type ApplicationExpr struct {
	Function Expr
	Args     []Expr
	Location
}

func (*ApplicationExpr) exprNode()   {}
func (e *ApplicationExpr) Loc() Location { return e.Location }

// BinaryExpr covers every infix operator in spec §6, including the
// thrush/pipeline/sequence forms that are handled structurally by the
// evaluator rather than by ordinary arithmetic dispatch.
type BinaryExpr struct {
	Left     Expr
	Operator string
	Right    Expr
	Location
}

func (*BinaryExpr) exprNode()   {}
func (e *BinaryExpr) Loc() Location { return e.Location }

// PipelineExpr is the desugared form of a chain of `|>`/`<|` steps,
// recording each step's direction so the evaluator doesn't need to
// re-derive it from nested BinaryExprs.
type PipelineExpr struct {
	Initial   Expr
	Steps     []PipelineStep
	Location
}

type PipelineStep struct {
	Operator string // "|>" or "<|"
	Expr     Expr
}

func (*PipelineExpr) exprNode()   {}
func (e *PipelineExpr) Loc() Location { return e.Location }

// IfExpr is `if cond then t else f`.
type IfExpr struct {
	Condition Expr
	Then      Expr
	Else      Expr
	Location
}

func (*IfExpr) exprNode()   {}
func (e *IfExpr) Loc() Location { return e.Location }

// MatchCase is one `pattern => expression` arm.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
}

// MatchExpr is `match scrutinee with (case; case; ...)`.
type MatchExpr struct {
	Scrutinee Expr
	Cases     []MatchCase
	Location
}

func (*MatchExpr) exprNode()   {}
func (e *MatchExpr) Loc() Location { return e.Location }

// WhereExpr is `expr where (defs)`.
type WhereExpr struct {
	Main  Expr
	Defs  []Expr
	Location
}

func (*WhereExpr) exprNode()   {}
func (e *WhereExpr) Loc() Location { return e.Location }

// DefinitionExpr is `name = value`.
type DefinitionExpr struct {
	Name  string
	Value Expr
	Doc   string
	Location
}

func (*DefinitionExpr) exprNode()   {}
func (e *DefinitionExpr) Loc() Location { return e.Location }

// MutableDefinitionExpr is `mut name = value`.
type MutableDefinitionExpr struct {
	Name  string
	Value Expr
	Location
}

func (*MutableDefinitionExpr) exprNode()   {}
func (e *MutableDefinitionExpr) Loc() Location { return e.Location }

// MutationExpr is `mut! name = value`.
type MutationExpr struct {
	Name  string
	Value Expr
	Location
}

func (*MutationExpr) exprNode()   {}
func (e *MutationExpr) Loc() Location { return e.Location }

// TypedExpr is `expr : type`.
type TypedExpr struct {
	Expr Expr
	Type Type
	Location
}

func (*TypedExpr) exprNode()   {}
func (e *TypedExpr) Loc() Location { return e.Location }

// ConstrainedExpr is `expr : type given constraint`.
type ConstrainedExpr struct {
	Expr       Expr
	Type       Type
	Constraint Constraint
	Location
}

func (*ConstrainedExpr) exprNode()   {}
func (e *ConstrainedExpr) Loc() Location { return e.Location }

// ImportExpr is `import "path"`.
type ImportExpr struct {
	Path string
	Location
}

func (*ImportExpr) exprNode()   {}
func (e *ImportExpr) Loc() Location { return e.Location }

// TupleDestructuringExpr is `{a, b} = value`.
type TupleDestructuringExpr struct {
	Names []string
	Value Expr
	Location
}

func (*TupleDestructuringExpr) exprNode()   {}
func (e *TupleDestructuringExpr) Loc() Location { return e.Location }

// RecordDestructuringExpr is `{@a, @b} = value`.
type RecordDestructuringExpr struct {
	Fields []string
	Value  Expr
	Location
}

func (*RecordDestructuringExpr) exprNode()   {}
func (e *RecordDestructuringExpr) Loc() Location { return e.Location }

// ConstructorDecl is one `Ctor arg1 arg2` alternative of a `variant` decl.
type ConstructorDecl struct {
	Name string
	Args []Type
}

// TypeDefinitionExpr is `variant Name args = Ctor args | ...` (ADT decl).
type TypeDefinitionExpr struct {
	Name         string
	TypeParams   []string
	Constructors []ConstructorDecl
	Doc          string
	Location
}

func (*TypeDefinitionExpr) exprNode()   {}
func (e *TypeDefinitionExpr) Loc() Location { return e.Location }

// UserDefinedTypeExpr is `type Name args = ...` for record/tuple/union
// type aliases that don't introduce new runtime constructors.
type UserDefinedTypeExpr struct {
	Name       string
	TypeParams []string
	Definition Type
	Location
}

func (*UserDefinedTypeExpr) exprNode()   {}
func (e *UserDefinedTypeExpr) Loc() Location { return e.Location }

// TraitSignature is one `funcName : type` line inside a `constraint` block.
type TraitSignature struct {
	Name string
	Type Type
}

// ConstraintDefinitionExpr is `constraint Name params (fn : type; ...)`.
type ConstraintDefinitionExpr struct {
	Name       string
	TypeParams []string
	Signatures []TraitSignature
	Doc        string
	Location
}

func (*ConstraintDefinitionExpr) exprNode()   {}
func (e *ConstraintDefinitionExpr) Loc() Location { return e.Location }

// TraitMethodImpl is one `funcName = expr` line inside an `implement` block.
type TraitMethodImpl struct {
	Name  string
	Value Expr
}

// ImplementDefinitionExpr is `implement Trait TypeExpr [given G] (fn = expr; ...)`.
type ImplementDefinitionExpr struct {
	Trait      string
	TargetType Type
	Given      Constraint // nil if no `given` clause
	Methods    []TraitMethodImpl
	Location
}

func (*ImplementDefinitionExpr) exprNode()   {}
func (e *ImplementDefinitionExpr) Loc() Location { return e.Location }

// Program is the parser's top-level output (spec §6: `parse(tokens) ->
// Program`).
type Program struct {
	Statements []Expr
	Location
}
