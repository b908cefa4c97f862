package walk

import (
	"fmt"
	"strconv"

	"keidec/ast"
	"keidec/typing"
)

// checkCondition checks that the condition of construct can be tested for
// truth.
func (w *Walker) checkCondition(cond *ast.Node, construct string) {
	typ := w.visit(cond)
	if typ != typing.Error && !typ.IsTruthy() {
		w.errorOn(cond, "condition of `%s` must be numeric or boolean, got %s", construct, typ)
	}
}

func (w *Walker) VisitIf(n *ast.Node) typing.Type {
	w.checkCondition(n.Child(0), "if")

	w.withScope("if", func() {
		w.visit(n.Child(1))
	})

	if elseBlock := n.Child(2); elseBlock != nil {
		w.withScope("else", func() {
			w.visit(elseBlock)
		})
	}

	return typing.Unresolved
}

func (w *Walker) VisitWhile(n *ast.Node) typing.Type {
	w.checkCondition(n.Child(0), "while")

	w.withScope("while", func() {
		w.visit(n.Child(1))
	})

	return typing.Unresolved
}

// VisitDoUntil walks a do-until loop.  The condition is checked outside of
// the body's scope.
func (w *Walker) VisitDoUntil(n *ast.Node) typing.Type {
	w.withScope("do", func() {
		w.visit(n.Child(0))
	})

	w.checkCondition(n.Child(1), "until")
	return typing.Unresolved
}

// VisitFor walks a for loop.  The loop variable lives in the same scope as the
// loop body.
func (w *Walker) VisitFor(n *ast.Node) typing.Type {
	w.withScope("for", func() {
		w.visit(n.Child(0))
		w.checkCondition(n.Child(1), "for")
		w.visit(n.Child(2))
		w.visit(n.Child(3))
	})

	return typing.Unresolved
}

// VisitSwitch walks a switch statement and checks its labels: case values
// must be unique and there may be at most one default label.
func (w *Walker) VisitSwitch(n *ast.Node) typing.Type {
	discType := w.visit(n.Child(0))
	if discType != typing.Error && discType != typing.Int {
		w.errorOn(n.Child(0), "switch discriminant must be int, got %s", discType)
	}

	w.withScope("switch", func() {
		seenCases := make(map[int64]struct{})
		seenDefault := false

		for _, label := range n.Children[1:] {
			switch label.Kind {
			case ast.CASE_BLOCK:
				value, err := strconv.ParseInt(label.Value, 10, 32)
				if err != nil {
					w.errorOn(label, "case value `%s` does not fit in an int", label.Value)
				} else if _, ok := seenCases[value]; ok {
					w.errorOn(label, "duplicate case value `%s` in switch", label.Value)
				} else {
					seenCases[value] = struct{}{}
				}
			case ast.DEFAULT_BLOCK:
				if seenDefault {
					w.errorOn(label, "multiple `default` labels in switch")
				}

				seenDefault = true
			}

			w.visit(label)
		}
	})

	return typing.Unresolved
}

// VisitCase walks the body of a case label in its own scope.
func (w *Walker) VisitCase(n *ast.Node) typing.Type {
	w.withScope(fmt.Sprintf("case %s", n.Value), func() {
		w.visit(n.Child(0))
	})

	return typing.Unresolved
}

// VisitDefault walks the body of a default label in its own scope.
func (w *Walker) VisitDefault(n *ast.Node) typing.Type {
	w.withScope("default", func() {
		w.visit(n.Child(0))
	})

	return typing.Unresolved
}
