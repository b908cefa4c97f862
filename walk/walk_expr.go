package walk

import (
	"strconv"
	"strings"

	"keidec/ast"
	"keidec/typing"
)

func (w *Walker) VisitIdentifier(n *ast.Node) typing.Type {
	sym, ok := w.lookupVariable(n)
	if !ok {
		return typing.Error
	}

	sym.Used = true
	n.State = ast.StateUsed
	return sym.Type
}

func (w *Walker) VisitNumber(n *ast.Node) typing.Type {
	if strings.Contains(n.Value, ".") {
		if _, err := strconv.ParseFloat(n.Value, 32); err != nil {
			w.errorOn(n, "real literal `%s` is out of range", n.Value)
			return typing.Error
		}

		return typing.Float
	}

	if _, err := strconv.ParseInt(n.Value, 10, 32); err != nil {
		w.errorOn(n, "integer literal `%s` does not fit in an int", n.Value)
		return typing.Error
	}

	return typing.Int
}

func (w *Walker) VisitString(n *ast.Node) typing.Type {
	return typing.String
}

func (w *Walker) VisitBoolean(n *ast.Node) typing.Type {
	return typing.Boolean
}

func (w *Walker) VisitBinaryOp(n *ast.Node) typing.Type {
	lhs := w.visit(n.Child(0))
	rhs := w.visit(n.Child(1))

	typ, ok := typing.Binary(n.Value, lhs, rhs)
	if !ok {
		w.errorOn(n, "operator `%s` cannot be applied to %s and %s", n.Value, lhs, rhs)
		return typing.Error
	}

	return typ
}

func (w *Walker) VisitUnaryOp(n *ast.Node) typing.Type {
	operand := w.visit(n.Child(0))

	typ, ok := typing.Unary(n.Value, operand)
	if !ok {
		w.errorOn(n, "operator `%s` cannot be applied to %s", n.Value, operand)
		return typing.Error
	}

	return typ
}

// VisitCall checks a function call.  The call resolves to the return type of
// the callee even if its arguments are wrong.
func (w *Walker) VisitCall(n *ast.Node) typing.Type {
	argTypes := make([]typing.Type, n.Len())
	for i, arg := range n.Children {
		argTypes[i] = w.visit(arg)
	}

	sym, ok := w.table.Lookup(n.Value)
	if !ok {
		w.errorOn(n, "undeclared function `%s`", n.Value)
		return typing.Error
	}

	if !sym.IsFunc() {
		w.errorOn(n, "`%s` is not a function", n.Value)
		return typing.Error
	}

	sym.Used = true

	if len(argTypes) != len(sym.ParamTypes) {
		w.errorOn(n, "function `%s` expects %d arguments but got %d", n.Value, len(sym.ParamTypes), len(argTypes))
		return sym.Type
	}

	for i, argType := range argTypes {
		if !typing.Assignable(sym.ParamTypes[i], argType) {
			w.errorOn(n.Children[i], "argument %d of `%s` must be %s, got %s", i+1, n.Value, sym.ParamTypes[i], argType)
		}
	}

	return sym.Type
}
