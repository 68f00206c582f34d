// Package ast defines the tagged-union node types produced by the parser:
// expressions, patterns, type expressions, constraints and effect sets,
// all carrying source locations for diagnostics.
package ast

import "fmt"

// Position is a single point in a source file.
type Position struct {
	Line   int
	Col    int
	File   string
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Location is a span in source text; every token and AST node carries one.
type Location struct {
	Start Position
	End   Position
}

// String renders a location the way diagnostics quote it: "at line N".
func (l Location) String() string {
	return fmt.Sprintf("at line %d", l.Start.Line)
}

// Merge produces the smallest location spanning both operands. Used when a
// composite node's location should cover all of its children.
func Merge(a, b Location) Location {
	start := a.Start
	if b.Start.Line < start.Line || (b.Start.Line == start.Line && b.Start.Col < start.Col) {
		start = b.Start
	}
	end := a.End
	if b.End.Line > end.Line || (b.End.Line == end.Line && b.End.Col > end.Col) {
		end = b.End
	}
	return Location{Start: start, End: end}
}

// Node is satisfied by every AST node: expressions, patterns, and types.
type Node interface {
	Loc() Location
}
