package eval

import (
	"fmt"

	"github.com/sunholo/noolang/internal/ast"
)

// RuntimeError is a located evaluation failure — unbound variable, failed
// pattern match, missing record field, applying a non-function — matching
// the teacher's practice of attaching a source position to eval errors
// rather than returning a bare fmt.Errorf.
type RuntimeError struct {
	Message  string
	Location ast.Location
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Location)
}

func runtimeErrorf(loc ast.Location, format string, args ...interface{}) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Location: loc}
}
