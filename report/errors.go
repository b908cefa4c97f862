package report

import (
	"fmt"
	"runtime/debug"
)

// Category is the stage of the compiler which produced a diagnostic.
type Category int

// Enumeration of diagnostic categories.
const (
	Lexical Category = iota
	Syntax
	Semantic
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	default:
		return "Semantic"
	}
}

// Diagnostic is a single user-facing compilation error or warning.
type Diagnostic struct {
	Category Category
	Message  string
	Span     *TextSpan

	// Warning diagnostics never block later stages.
	Warning bool
}

// Line returns the line the diagnostic starts on.
func (d *Diagnostic) Line() int {
	return d.Span.StartLine
}

// Col returns the column the diagnostic starts on.
func (d *Diagnostic) Col() int {
	return d.Span.StartCol
}

// Error renders the diagnostic in its stable form: `<Category> error at line
// L, column C: <description>`.
func (d *Diagnostic) Error() string {
	label := "error"
	if d.Warning {
		label = "warning"
	}

	return fmt.Sprintf("%s %s at line %d, column %d: %s", d.Category, label, d.Span.StartLine, d.Span.StartCol, d.Message)
}

// Raise creates a new error diagnostic over span.
func Raise(cat Category, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Category: cat,
		Message:  fmt.Sprintf(msg, args...),
		Span:     span,
	}
}

// Warn creates a new warning diagnostic over span.
func Warn(cat Category, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	d := Raise(cat, span, msg, args...)
	d.Warning = true
	return d
}

// Messages renders every diagnostic in its stable form.
func Messages(diags []*Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Error()
	}

	return msgs
}

// -----------------------------------------------------------------------------

// ICE is an internal compiler error: a broken invariant between compiler
// stages.  It is never caused by the user's source text.
type ICE struct {
	Message string
	Stack   []byte
}

func (ice *ICE) Error() string {
	return "internal compiler error: " + ice.Message
}

// Throw aborts the current stage with an internal compiler error.  It must be
// paired with a deferred call to CatchICE at the stage boundary.
func Throw(msg string, args ...interface{}) {
	panic(&ICE{Message: fmt.Sprintf(msg, args...), Stack: debug.Stack()})
}

// CatchICE recovers an ICE thrown by Throw and stores it into err.  Any other
// panic is propagated.
func CatchICE(err *error) {
	if x := recover(); x != nil {
		if ice, ok := x.(*ICE); ok {
			*err = ice
			return
		}

		panic(x)
	}
}
