// Package diag implements the single structured diagnostic type every
// failure surface of the pipeline raises through: parse errors, unifier
// errors, trait resolution errors, runtime errors. One Diagnostic, one
// formatter, grounded on the teacher's cmd/ailang red/green/cyan/bold
// SprintFunc palette.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/noolang/internal/ast"
)

// Kind classifies where in the pipeline a Diagnostic originated.
type Kind string

const (
	KindParse    Kind = "parse"
	KindType     Kind = "type"
	KindTrait    Kind = "trait"
	KindRuntime  Kind = "runtime"
	KindInternal Kind = "internal"
)

// Diagnostic is a located, categorized failure. Context is an optional
// source snippet; Suggestion is an optional one-line fix hint — both are
// left empty when the producing stage has nothing useful to add.
type Diagnostic struct {
	Kind       Kind
	Message    string
	Location   ast.Location
	Context    string
	Suggestion string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Message, d.Location)
}

func New(kind Kind, loc ast.Location, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

func (d *Diagnostic) WithContext(context string) *Diagnostic {
	d.Context = context
	return d
}

func (d *Diagnostic) WithSuggestion(suggestion string) *Diagnostic {
	d.Suggestion = suggestion
	return d
}

var (
	bold   = color.New(color.Bold).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Format renders d the way cmd/noolang prints failures to a terminal:
// bold category, red message, cyan location, then an optional indented
// context line and an optional yellow "hint:" suggestion line.
func Format(d *Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s\n", bold(strings.ToUpper(string(d.Kind))), red(d.Message), cyan(d.Location.String()))
	if d.Context != "" {
		fmt.Fprintf(&b, "  %s\n", d.Context)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n", yellow("hint:"), d.Suggestion)
	}
	return b.String()
}

// AsDiagnostic extracts a *Diagnostic from err, wrapping it as an
// internal-kind diagnostic with no location if err isn't already one —
// the fallback path for errors escaping infer/eval without going through
// New (e.g. a bare fmt.Errorf bubbled up from a third-party library).
func AsDiagnostic(err error) *Diagnostic {
	if err == nil {
		return nil
	}
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	return &Diagnostic{Kind: KindInternal, Message: err.Error()}
}
